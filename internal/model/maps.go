package model

import (
	"fmt"
	"reflect"
)

func describeMapKey(rv reflect.Value, name string) (FieldDescriptor, error) {
	keyType := rv.Type().Key()
	if keyType.Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %q on map keyed by %s", ErrFieldNotFound, name, keyType)
	}

	entry := rv.MapIndex(reflect.ValueOf(name).Convert(keyType))
	if !entry.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	value := entry.Interface()
	return Static{
		Val:     value,
		HasVal:  !isNil(value),
		ValKind: KindOf(rv.Type().Elem()),
	}, nil
}
