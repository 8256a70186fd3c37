// Package entity resolves field values from caller-owned objects. Forms that
// edit an existing record can pass the record as the entity and each field
// looks its value up by name.
package entity

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formfields/pkg/casing"
)

// Provider lets an entity answer lookups without reflection.
type Provider interface {
	FieldValue(name string) (any, bool)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(name string) (any, bool)

// FieldValue implements Provider.
func (fn ProviderFunc) FieldValue(name string) (any, bool) {
	return fn(name)
}

const tagName = "form"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Lookup resolves name against entity. The lookup order is Provider, string
// keyed maps, zero-argument methods named Get<Name> then <Name>, and finally
// exported struct fields named <Name> or tagged `form:"name"`. <Name> is the
// Pascal-cased field name, so "first_name" probes GetFirstName, FirstName.
//
// Methods may return (value), (value, bool) or (value, error); a false bool or
// a non-nil error means the entity does not supply the value.
func Lookup(entity any, name string) (any, bool) {
	if entity == nil || strings.TrimSpace(name) == "" {
		return nil, false
	}

	// Typed nils resolve nothing, even when they implement Provider.
	rv := reflect.ValueOf(entity)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Func) && rv.IsNil() {
		return nil, false
	}

	switch typed := entity.(type) {
	case Provider:
		return typed.FieldValue(name)
	case map[string]any:
		value, ok := typed[name]
		return value, ok
	case map[string]string:
		value, ok := typed[name]
		return value, ok
	}

	pascal := casing.Pascal(name)
	for _, method := range []string{"Get" + pascal, pascal} {
		if value, ok := callMethod(rv, method); ok {
			return value, true
		}
	}

	return structField(rv, name, pascal)
}

// MustLookup is Lookup for callers that treat a missing value as a bug.
func MustLookup(entity any, name string) any {
	value, ok := Lookup(entity, name)
	if !ok {
		panic(fmt.Sprintf("entity: %T does not provide %q", entity, name))
	}
	return value
}

func callMethod(rv reflect.Value, name string) (any, bool) {
	method := rv.MethodByName(name)
	if !method.IsValid() && rv.Kind() != reflect.Pointer && rv.CanAddr() {
		method = rv.Addr().MethodByName(name)
	}
	if !method.IsValid() {
		return nil, false
	}

	mt := method.Type()
	if mt.NumIn() != 0 || mt.NumOut() == 0 || mt.NumOut() > 2 {
		return nil, false
	}

	out := method.Call(nil)
	if len(out) == 2 {
		switch {
		case mt.Out(1).Kind() == reflect.Bool:
			if !out[1].Bool() {
				return nil, false
			}
		case mt.Out(1).Implements(errorType):
			if !out[1].IsNil() {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return out[0].Interface(), true
}

func structField(rv reflect.Value, name, pascal string) (any, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := strings.Split(sf.Tag.Get(tagName), ",")[0]
		if tag == "-" {
			continue
		}
		if tag == name || (tag == "" && sf.Name == pascal) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}
