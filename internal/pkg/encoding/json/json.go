// Package json provides JSON encode/decode helpers with unified errors.
package json

import (
	jsonLib "encoding/json"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

func Encode(v any, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = jsonLib.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = jsonLib.Marshal(v)
	}
	if err != nil {
		return nil, errors.PrefixError(err, "cannot encode JSON")
	}
	return data, nil
}

func MustEncode(v any, pretty bool) []byte {
	data, err := Encode(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func EncodeString(v any, pretty bool) (string, error) {
	data, err := Encode(v, pretty)
	return string(data), err
}

func MustEncodeString(v any, pretty bool) string {
	data, err := EncodeString(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func Decode(data []byte, target any) error {
	if err := jsonLib.Unmarshal(data, target); err != nil {
		return errors.PrefixError(err, "cannot decode JSON")
	}
	return nil
}

func MustDecode(data []byte, target any) {
	if err := Decode(data, target); err != nil {
		panic(err)
	}
}

func DecodeString(data string, target any) error {
	return Decode([]byte(data), target)
}
