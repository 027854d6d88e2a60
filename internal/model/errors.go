package model

import "errors"

// Sentinel errors for programmatic checking, mirroring the narrow
// recognizable-failure set used across the analytical engine.
var (
	ErrNotDecorated  = errors.New("model: class record accessed before provider decoration")
	ErrNoSuchField   = errors.New("model: no field with that name and descriptor")
	ErrNoSuchMethod  = errors.New("model: no method with that name and descriptor")
	ErrNoConstructor = errors.New("model: no constructor with that descriptor")
	ErrNoSuperClass  = errors.New("model: class has no super class")
	ErrNoOuterClass  = errors.New("model: class has no outer class")
	ErrUnresolvable  = errors.New("model: referenced class is not reachable from any root")
)

// ErrorCode gives a machine-readable shape to the above for callers that
// want to branch without string-matching error text.
type ErrorCode string

const (
	ECNone           ErrorCode = ""
	ECNotDecorated   ErrorCode = "ERR_NOT_DECORATED"
	ECNoSuchMember   ErrorCode = "ERR_NO_SUCH_MEMBER"
	ECNoSuperClass   ErrorCode = "ERR_NO_SUPER_CLASS"
	ECUnresolvable   ErrorCode = "ERR_UNRESOLVABLE"
)
