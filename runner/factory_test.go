// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package runner

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/gojuno/minimock/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/flow/descriptor"
	"github.com/lucidledger/flow-core/flow/whitelist"
	"github.com/lucidledger/flow-core/reference"
	"github.com/lucidledger/flow-core/testutils"
)

const (
	classExample   = "test.Example"
	classNoArg     = "test.NoArg"
	classAmbiguous = "test.Ambiguous"
	classOptional  = "test.Optional"
	classFailing   = "test.Failing"
	classUnknown   = "test.Unknown"
	classTwoParams = "test.TwoParams"
	classNotify    = "test.Notify"
)

var errBoom = errors.New("boom")

type exampleFlow struct {
	A int
	B string
}

func (f *exampleFlow) Call(ctx context.Context) (interface{}, error) {
	return fmt.Sprintf("%d/%s", f.A, f.B), nil
}

type noArgFlow struct{}

func (f *noArgFlow) Call(ctx context.Context) (interface{}, error) { return nil, nil }

// ambiguousFlow records which declared constructor built it.
type ambiguousFlow struct {
	Ctor  int
	Value interface{}
}

func (f *ambiguousFlow) Call(ctx context.Context) (interface{}, error) { return f.Value, nil }

type optionalFlow struct {
	Name  string
	Limit int
	Memo  *string
}

func (f *optionalFlow) Call(ctx context.Context) (interface{}, error) { return f.Name, nil }

// Port of the original two-distinct-param-types construction scenario.
type paramType1 struct{ value int }
type paramType2 struct{ value string }

type twoParamsFlow struct {
	A paramType1
	B paramType2
}

func (f *twoParamsFlow) Call(ctx context.Context) (interface{}, error) { return nil, nil }

type notifyFlow struct {
	Memo *string
	Tags []string
}

func (f *notifyFlow) Call(ctx context.Context) (interface{}, error) { return f.Tags, nil }

var (
	intType        = reflect.TypeOf(int(0))
	stringType     = reflect.TypeOf("")
	stringPtrType  = reflect.TypeOf((*string)(nil))
	stringListType = reflect.TypeOf([]string(nil))
	interfaceType  = reflect.TypeOf((*interface{})(nil)).Elem()
	paramType1Type = reflect.TypeOf(paramType1{})
	paramType2Type = reflect.TypeOf(paramType2{})
)

func newTestDescriptors() []descriptor.Logic {
	return []descriptor.Logic{
		{
			Class: classExample,
			Code:  reference.CodeOf([]byte(classExample)),
			Constructors: []descriptor.Constructor{{
				Parameters: []descriptor.Parameter{
					{Name: "a", Type: intType},
					{Name: "b", Type: stringType},
				},
				Factory: func(args flow.Arguments) (flow.Logic, error) {
					return &exampleFlow{A: args["a"].(int), B: args["b"].(string)}, nil
				},
			}},
		},
		{
			Class: classNoArg,
			Code:  reference.CodeOf([]byte(classNoArg)),
			Constructors: []descriptor.Constructor{{
				Factory: func(args flow.Arguments) (flow.Logic, error) {
					return &noArgFlow{}, nil
				},
			}},
		},
		{
			Class: classAmbiguous,
			Code:  reference.CodeOf([]byte(classAmbiguous)),
			Constructors: []descriptor.Constructor{
				{
					Parameters: []descriptor.Parameter{{Name: "value", Type: interfaceType}},
					Factory: func(args flow.Arguments) (flow.Logic, error) {
						return &ambiguousFlow{Ctor: 1, Value: args["value"]}, nil
					},
				},
				{
					Parameters: []descriptor.Parameter{{Name: "value", Type: stringType}},
					Factory: func(args flow.Arguments) (flow.Logic, error) {
						return &ambiguousFlow{Ctor: 2, Value: args["value"]}, nil
					},
				},
			},
		},
		{
			Class: classOptional,
			Code:  reference.CodeOf([]byte(classOptional)),
			Constructors: []descriptor.Constructor{{
				Parameters: []descriptor.Parameter{
					{Name: "name", Type: stringType},
					{Name: "limit", Type: intType, Optional: true, Default: 5},
					{Name: "memo", Type: stringPtrType},
				},
				Factory: func(args flow.Arguments) (flow.Logic, error) {
					f := &optionalFlow{
						Name:  args["name"].(string),
						Limit: args["limit"].(int),
					}
					if memo, ok := args["memo"].(*string); ok {
						f.Memo = memo
					}
					return f, nil
				},
			}},
		},
		{
			Class: classFailing,
			Code:  reference.CodeOf([]byte(classFailing)),
			Constructors: []descriptor.Constructor{{
				Parameters: []descriptor.Parameter{{Name: "reason", Type: stringType}},
				Factory: func(args flow.Arguments) (flow.Logic, error) {
					return nil, errBoom
				},
			}},
		},
		{
			Class: classNotify,
			Code:  reference.CodeOf([]byte(classNotify)),
			Constructors: []descriptor.Constructor{{
				Parameters: []descriptor.Parameter{
					{Name: "memo", Type: stringPtrType},
					{Name: "tags", Type: stringListType},
				},
				Factory: func(args flow.Arguments) (flow.Logic, error) {
					f := &notifyFlow{}
					if memo, ok := args["memo"].(*string); ok {
						f.Memo = memo
					}
					if tags, ok := args["tags"].([]string); ok {
						f.Tags = tags
					}
					return f, nil
				},
			}},
		},
		{
			Class: classTwoParams,
			Code:  reference.CodeOf([]byte(classTwoParams)),
			Constructors: []descriptor.Constructor{{
				Parameters: []descriptor.Parameter{
					{Name: "a", Type: paramType1Type},
					{Name: "b", Type: paramType2Type},
				},
				Factory: func(args flow.Arguments) (flow.Logic, error) {
					return &twoParamsFlow{
						A: args["a"].(paramType1),
						B: args["b"].(paramType2),
					}, nil
				},
			}},
		},
	}
}

func newTestRegistry(t *testing.T) descriptor.Registry {
	registry := descriptor.NewRegistry()
	for _, d := range newTestDescriptors() {
		require.NoError(t, registry.RegisterLogic(d))
	}
	return registry
}

func allClasses() []string {
	classes := make([]string, 0)
	for _, d := range newTestDescriptors() {
		classes = append(classes, d.Class)
	}
	return classes
}

func newPermissiveFactory(t *testing.T) *Factory {
	return NewFactory(newTestRegistry(t), whitelist.NewGuard(allClasses()))
}

func TestCreateFromPositional_ExactMatch(t *testing.T) {
	f := newPermissiveFactory(t)

	ref, err := f.CreateFromPositional(classExample, 1, "hi")
	require.NoError(t, err)
	require.Equal(t, classExample, ref.Class)
	require.Equal(t, flow.Arguments{"a": 1, "b": "hi"}, ref.Arguments)
	require.Len(t, ref.Context, 1)

	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	example := logic.(*exampleFlow)
	assert.Equal(t, 1, example.A)
	assert.Equal(t, "hi", example.B)
}

func TestCreateFromPositional_NoArg(t *testing.T) {
	f := newPermissiveFactory(t)

	ref, err := f.CreateFromPositional(classNoArg)
	require.NoError(t, err)

	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	require.IsType(t, &noArgFlow{}, logic)
}

func TestCreateFromPositional_TwoDistinctParamTypes(t *testing.T) {
	// a factory whitelisting exactly the target class accepts a positional
	// construction with two distinct user-defined argument types
	f := NewFactory(newTestRegistry(t), whitelist.NewGuard([]string{classTwoParams}))

	ref, err := f.CreateFromPositional(classTwoParams, paramType1{1}, paramType2{"Hello Jack"})
	require.NoError(t, err)

	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	two := logic.(*twoParamsFlow)
	assert.Equal(t, 1, two.A.value)
	assert.Equal(t, "Hello Jack", two.B.value)
}

func TestCreateFromPositional_ArityMismatch(t *testing.T) {
	f := newPermissiveFactory(t)

	_, err := f.CreateFromPositional(classExample, 1)
	noMatch := flow.NoMatchingConstructorError{}
	require.True(t, errors.As(err, &noMatch))
	require.Equal(t, classExample, noMatch.Class)
}

func TestCreateFromPositional_TypeMismatch(t *testing.T) {
	f := newPermissiveFactory(t)

	_, err := f.CreateFromPositional(classExample, "not-an-int", "hi")
	noMatch := flow.NoMatchingConstructorError{}
	require.True(t, errors.As(err, &noMatch))
}

func TestCreateFromPositional_Ambiguous(t *testing.T) {
	f := newPermissiveFactory(t)

	// a string satisfies both the interface{} and the string constructor
	_, err := f.CreateFromPositional(classAmbiguous, "hi")
	ambiguous := flow.AmbiguousConstructorError{}
	require.True(t, errors.As(err, &ambiguous))
	require.Equal(t, 2, ambiguous.Matches)

	// an int satisfies only the interface{} constructor
	ref, err := f.CreateFromPositional(classAmbiguous, 42)
	require.NoError(t, err)
	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	require.Equal(t, 1, logic.(*ambiguousFlow).Ctor)
}

func TestCreateFromPositional_NilDefersTypeCheck(t *testing.T) {
	f := newPermissiveFactory(t)

	// nil passes the positional stage for the int parameter but fails the
	// named nullability check
	_, err := f.CreateFromPositional(classExample, nil, "hi")
	noMatch := flow.NoMatchingConstructorError{}
	require.True(t, errors.As(err, &noMatch))

	// nil is accepted end-to-end for a nillable parameter
	ref, err := f.CreateFromPositional(classOptional, "task", 3, nil)
	require.NoError(t, err)
	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	require.Nil(t, logic.(*optionalFlow).Memo)
}

func TestCreateFromPositional_UnknownClass(t *testing.T) {
	f := newPermissiveFactory(t)

	_, err := f.CreateFromPositional(classUnknown)
	notFound := flow.ClassNotFoundError{}
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, classUnknown, notFound.Class)
}

func TestCreateFromNamed_Success(t *testing.T) {
	f := newPermissiveFactory(t)

	ref, err := f.CreateFromNamed(classExample, flow.Arguments{"a": 1, "b": "hi"})
	require.NoError(t, err)

	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	example := logic.(*exampleFlow)
	assert.Equal(t, 1, example.A)
	assert.Equal(t, "hi", example.B)
}

func TestCreateFromNamed_NotWhitelisted(t *testing.T) {
	f := NewFactory(newTestRegistry(t), whitelist.NewGuard(nil))

	// argument validity is irrelevant: the guard rejects first
	for _, args := range []flow.Arguments{
		{"a": 1, "b": "hi"},
		{"completely": "wrong"},
		nil,
	} {
		_, err := f.CreateFromNamed(classExample, args)
		notAllowed := flow.NotWhitelistedError{}
		require.True(t, errors.As(err, &notAllowed))
		require.Equal(t, classExample, notAllowed.Class)
	}
}

func TestCreateFromNamed_UnusedKey(t *testing.T) {
	f := newPermissiveFactory(t)

	_, err := f.CreateFromNamed(classExample, flow.Arguments{"a": 1, "c": 2})
	noMatch := flow.NoMatchingConstructorError{}
	require.True(t, errors.As(err, &noMatch))
}

func TestCreateFromNamed_MissingRequired(t *testing.T) {
	f := newPermissiveFactory(t)

	_, err := f.CreateFromNamed(classExample, flow.Arguments{"a": 1})
	noMatch := flow.NoMatchingConstructorError{}
	require.True(t, errors.As(err, &noMatch))
}

func TestCreateFromNamed_OptionalDefault(t *testing.T) {
	f := newPermissiveFactory(t)

	memo := "note"
	ref, err := f.CreateFromNamed(classOptional, flow.Arguments{"name": "task", "memo": &memo})
	require.NoError(t, err)

	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	opt := logic.(*optionalFlow)
	assert.Equal(t, "task", opt.Name)
	assert.Equal(t, 5, opt.Limit) // default bound for the absent optional
	require.NotNil(t, opt.Memo)
	assert.Equal(t, "note", *opt.Memo)
}

func TestCreateFromNamed_FirstDeclaredMatchWins(t *testing.T) {
	// Named resolution never raises ambiguity: the first declared
	// constructor that is fully satisfied wins, even when a later one is
	// satisfied too. Pinned so the behavior cannot regress silently.
	f := newPermissiveFactory(t)

	ref, err := f.CreateFromNamed(classAmbiguous, flow.Arguments{"value": "hi"})
	require.NoError(t, err)

	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	require.Equal(t, 1, logic.(*ambiguousFlow).Ctor)
}

func TestResolve_RecheckedAgainstCurrentGuard(t *testing.T) {
	registry := newTestRegistry(t)
	sender := NewFactory(registry, whitelist.NewGuard(allClasses()))
	receiver := NewFactory(registry, whitelist.NewGuard([]string{classNoArg}))

	ref, err := sender.CreateFromNamed(classExample, flow.Arguments{"a": 1, "b": "hi"})
	require.NoError(t, err)

	// valid at creation time is not valid at resolution time
	_, err = receiver.Resolve(ref)
	notAllowed := flow.NotWhitelistedError{}
	require.True(t, errors.As(err, &notAllowed))
}

func TestResolve_Idempotent(t *testing.T) {
	f := newPermissiveFactory(t)

	ref, err := f.CreateFromNamed(classExample, flow.Arguments{"a": 7, "b": "x"})
	require.NoError(t, err)

	first, err := f.Resolve(ref)
	require.NoError(t, err)
	second, err := f.Resolve(ref)
	require.NoError(t, err)

	require.True(t, first.(*exampleFlow) != second.(*exampleFlow))
	require.Equal(t, first, second)
}

func TestResolve_NumericCoercion(t *testing.T) {
	f := newPermissiveFactory(t)

	// wire decoders widen numbers; the declared kinds are restored on bind
	for _, a := range []interface{}{int64(1), uint64(1), float64(1)} {
		ref := flow.LogicRef{Class: classExample, Arguments: flow.Arguments{"a": a, "b": "hi"}}
		logic, err := f.Resolve(ref)
		require.NoError(t, err, "arg %T", a)
		require.Equal(t, 1, logic.(*exampleFlow).A)
	}

	// non-integral and overflowing values never coerce
	for _, a := range []interface{}{float64(2.5), uint64(1 << 63)} {
		ref := flow.LogicRef{Class: classExample, Arguments: flow.Arguments{"a": a, "b": "hi"}}
		_, err := f.Resolve(ref)
		noMatch := flow.NoMatchingConstructorError{}
		require.True(t, errors.As(err, &noMatch), "arg %v", a)
	}
}

func TestResolve_WireRoundTrip(t *testing.T) {
	f := newPermissiveFactory(t)

	ref, err := f.CreateFromNamed(classExample, flow.Arguments{"a": 11, "b": "wire"})
	require.NoError(t, err)

	data, err := flow.Serialize(ref)
	require.NoError(t, err)

	decoded := flow.LogicRef{}
	require.NoError(t, flow.Deserialize(data, &decoded))

	logic, err := f.Resolve(decoded)
	require.NoError(t, err)
	example := logic.(*exampleFlow)
	assert.Equal(t, 11, example.A)
	assert.Equal(t, "wire", example.B)
}

func TestResolve_PointerAndSliceAfterWire(t *testing.T) {
	// decoders flatten pointers to their element value and rehydrate typed
	// slices as []interface{}; binding restores the declared types
	f := newPermissiveFactory(t)

	memo := "note"
	ref, err := f.CreateFromNamed(classNotify, flow.Arguments{
		"memo": &memo,
		"tags": []string{"a", "b"},
	})
	require.NoError(t, err)

	data, err := flow.Serialize(ref)
	require.NoError(t, err)
	decoded := flow.LogicRef{}
	require.NoError(t, flow.Deserialize(data, &decoded))

	logic, err := f.Resolve(decoded)
	require.NoError(t, err)
	notify := logic.(*notifyFlow)
	require.NotNil(t, notify.Memo)
	assert.Equal(t, "note", *notify.Memo)
	assert.Equal(t, []string{"a", "b"}, notify.Tags)
}

func TestResolve_DecodedShapesBindDirectly(t *testing.T) {
	f := newPermissiveFactory(t)

	// the shapes a decoder hands back, constructed without a wire pass
	ref := flow.LogicRef{Class: classNotify, Arguments: flow.Arguments{
		"memo": "note",
		"tags": []interface{}{"a", "b"},
	}}

	logic, err := f.Resolve(ref)
	require.NoError(t, err)
	notify := logic.(*notifyFlow)
	require.NotNil(t, notify.Memo)
	assert.Equal(t, "note", *notify.Memo)
	assert.Equal(t, []string{"a", "b"}, notify.Tags)

	// a slice with an incoercible element never converts
	_, err = f.Resolve(flow.LogicRef{Class: classNotify, Arguments: flow.Arguments{
		"memo": nil,
		"tags": []interface{}{"a", 1},
	}})
	noMatch := flow.NoMatchingConstructorError{}
	require.True(t, errors.As(err, &noMatch))
}

func TestResolve_ConstructorErrorsPropagateUnwrapped(t *testing.T) {
	f := newPermissiveFactory(t)

	ref, err := f.CreateFromNamed(classFailing, flow.Arguments{"reason": "bad"})
	require.NoError(t, err)

	_, err = f.Resolve(ref)
	require.True(t, errors.Is(err, errBoom))
}

func TestResolve_CodeContextMismatch(t *testing.T) {
	f := newPermissiveFactory(t)

	ref := flow.LogicRef{
		Class:     classExample,
		Context:   []reference.Code{reference.CodeOf([]byte("some other artifact"))},
		Arguments: flow.Arguments{"a": 1, "b": "hi"},
	}

	_, err := f.Resolve(ref)
	notFound := flow.ClassNotFoundError{}
	require.True(t, errors.As(err, &notFound))
}

func TestResolve_RegistryFailurePropagates(t *testing.T) {
	mc := minimock.NewController(t)

	registryErr := errors.New("registry unavailable")
	registry := testutils.NewRegistryMock(mc)
	registry.LogicByClassFunc = func(class string) (descriptor.Logic, error) {
		return descriptor.Logic{}, registryErr
	}

	f := NewFactory(registry, whitelist.NewGuard([]string{classExample}))
	_, err := f.Resolve(flow.LogicRef{Class: classExample})
	require.True(t, errors.Is(err, registryErr))
}
