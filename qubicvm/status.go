// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"errors"
	"fmt"
)

var (
	errUnknownStatus = errors.New("unknown status")
	errUnknownKind   = errors.New("unknown transaction kind")
)

// Status is the lifecycle state of a transaction. A transaction starts
// Pending and moves exactly once to Confirmed or Failed.
type Status uint32

const (
	Unknown Status = iota
	Pending
	Confirmed
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status can no longer change
func (s Status) Terminal() bool { return s == Confirmed || s == Failed }

// Valid returns nil if the status is a valid status.
func (s Status) Valid() error {
	switch s {
	case Pending, Confirmed, Failed:
		return nil
	default:
		return errUnknownStatus
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	if err := s.Valid(); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
		return nil
	case `"pending"`:
		*s = Pending
	case `"confirmed"`:
		*s = Confirmed
	case `"failed"`:
		*s = Failed
	default:
		return errUnknownStatus
	}
	return nil
}

// Kind distinguishes contract deployments from function calls
type Kind uint8

const (
	Deploy Kind = iota + 1
	Call
)

func (k Kind) String() string {
	switch k {
	case Deploy:
		return "deploy"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if k != Deploy && k != Call {
		return nil, errUnknownKind
	}
	return []byte(fmt.Sprintf("%q", k)), nil
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
		return nil
	case `"deploy"`:
		*k = Deploy
	case `"call"`:
		*k = Call
	default:
		return errUnknownKind
	}
	return nil
}

// BadgeStatus is the outcome of a mint
type BadgeStatus string

const (
	Minted     BadgeStatus = "minted"
	MintFailed BadgeStatus = "failed"
)
