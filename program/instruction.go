// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"
	"strings"

	"github.com/near/borsh-go"

	"github.com/ava-labs/counter/consts"
)

// Tag is the leading byte of the instruction data selecting the variant.
type Tag uint8

const (
	IncrementTag Tag = iota
	DecrementTag
	UpdateTag
	ResetTag
)

// Instruction is one of [Increment], [Decrement], [Update] or [Reset].
type Instruction interface {
	fmt.Stringer

	Tag() Tag
	instruction()
}

var (
	_ Instruction = Increment{}
	_ Instruction = Decrement{}
	_ Instruction = Update{}
	_ Instruction = Reset{}
)

// Increment adds [Value] to the counter.
type Increment struct {
	Value uint32
}

// Decrement subtracts [Value] from the counter, stopping at zero.
type Decrement struct {
	Value uint32
}

// Update replaces the counter with [Value].
type Update struct {
	Value uint32
}

// Reset sets the counter to zero.
type Reset struct{}

func (Increment) Tag() Tag { return IncrementTag }
func (Decrement) Tag() Tag { return DecrementTag }
func (Update) Tag() Tag    { return UpdateTag }
func (Reset) Tag() Tag     { return ResetTag }

func (Increment) String() string { return "increment" }
func (Decrement) String() string { return "decrement" }
func (Update) String() string    { return "update" }
func (Reset) String() string     { return "reset" }

func (Increment) instruction() {}
func (Decrement) instruction() {}
func (Update) instruction()    {}
func (Reset) instruction()     {}

// valueArgs is the borsh payload shared by all instructions carrying a value.
type valueArgs struct {
	Value uint32
}

// unpackers maps each tag to the decoder of its payload. The index is the
// tag.
var unpackers = [...]func(payload []byte) (Instruction, error){
	IncrementTag: func(payload []byte) (Instruction, error) {
		v, err := unpackValue(payload)
		return Increment{Value: v}, err
	},
	DecrementTag: func(payload []byte) (Instruction, error) {
		v, err := unpackValue(payload)
		return Decrement{Value: v}, err
	},
	UpdateTag: func(payload []byte) (Instruction, error) {
		v, err := unpackValue(payload)
		return Update{Value: v}, err
	},
	// Trailing bytes after a reset are ignored.
	ResetTag: func([]byte) (Instruction, error) {
		return Reset{}, nil
	},
}

// Unpack decodes [input] into an Instruction. The first byte is the tag and
// the remaining bytes are the tag specific payload.
func Unpack(input []byte) (Instruction, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidInstructionData)
	}
	tag := Tag(input[0])
	if int(tag) >= len(unpackers) {
		return nil, fmt.Errorf("%w: unknown tag %d", ErrInvalidInstructionData, tag)
	}
	ix, err := unpackers[tag](input[1:])
	if err != nil {
		return nil, err
	}
	return ix, nil
}

func unpackValue(payload []byte) (uint32, error) {
	if len(payload) != consts.Uint32Len {
		return 0, fmt.Errorf(
			"%w: expected %d byte payload but found %d",
			ErrDeserialization,
			consts.Uint32Len,
			len(payload),
		)
	}
	var args valueArgs
	if err := borsh.Deserialize(&args, payload); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	return args.Value, nil
}

// Pack encodes [ix] into the wire format accepted by [Unpack].
func Pack(ix Instruction) ([]byte, error) {
	var value uint32
	switch ix := ix.(type) {
	case Increment:
		value = ix.Value
	case Decrement:
		value = ix.Value
	case Update:
		value = ix.Value
	case Reset:
		return []byte{byte(ResetTag)}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownInstruction, ix)
	}
	payload, err := borsh.Serialize(valueArgs{Value: value})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return append([]byte{byte(ix.Tag())}, payload...), nil
}

// ParseInstruction returns the instruction named [name]. [value] is ignored
// for reset.
func ParseInstruction(name string, value uint32) (Instruction, error) {
	switch strings.ToLower(name) {
	case Increment{}.String():
		return Increment{Value: value}, nil
	case Decrement{}.String():
		return Decrement{Value: value}, nil
	case Update{}.String():
		return Update{Value: value}, nil
	case Reset{}.String():
		return Reset{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstruction, name)
	}
}
