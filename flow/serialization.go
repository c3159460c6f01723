// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package flow

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

var mapType = reflect.TypeOf(map[string]interface{}(nil))

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Serialize encodes a value into the platform wire form (CBOR).
func Serialize(o interface{}) ([]byte, error) {
	ch := new(codec.CborHandle)
	var data []byte
	err := codec.NewEncoderBytes(&data, ch).Encode(o)
	return data, errors.Wrap(err, "failed to serialize")
}

// Deserialize decodes platform wire form into the given target.
func Deserialize(data []byte, to interface{}) error {
	ch := new(codec.CborHandle)
	ch.MapType = mapType

	err := codec.NewDecoderBytes(data, ch).Decode(to)
	return errors.Wrap(err, "failed to deserialize")
}

// MustSerialize serializes, panics on error.
func MustSerialize(o interface{}) []byte {
	ch := new(codec.CborHandle)
	var data []byte
	if err := codec.NewEncoderBytes(&data, ch).Encode(o); err != nil {
		panic(err)
	}
	return data
}

// MustDeserialize deserializes, panics on error.
func MustDeserialize(data []byte, to interface{}) {
	ch := new(codec.CborHandle)
	ch.MapType = mapType
	if err := codec.NewDecoderBytes(data, ch).Decode(to); err != nil {
		panic(err)
	}
}

// MarshalLogicRefJSON renders a reference for API and tooling surfaces.
// The wire form between nodes is CBOR via Serialize.
func MarshalLogicRefJSON(ref LogicRef) ([]byte, error) {
	data, err := json.Marshal(ref)
	return data, errors.Wrap(err, "failed to marshal logic reference")
}

func UnmarshalLogicRefJSON(data []byte) (LogicRef, error) {
	ref := LogicRef{}
	if err := json.Unmarshal(data, &ref); err != nil {
		return LogicRef{}, errors.Wrap(err, "failed to unmarshal logic reference")
	}
	return ref, nil
}
