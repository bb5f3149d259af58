// nolint: gochecknoglobals
package idgenerator

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	FieldIDLength     = 10
	OperationIDLength = 10
	RequestIDLength   = 15
)

// alphabet used in ID generation.
var alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func FieldID() string {
	return gonanoid.MustGenerate(alphabet, FieldIDLength)
}

func OperationID() string {
	return gonanoid.MustGenerate(alphabet, OperationIDLength)
}

func RequestID() string {
	return gonanoid.MustGenerate(alphabet, RequestIDLength)
}
