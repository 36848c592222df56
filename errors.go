// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import "fmt"

// Kind identifies a class of failure this package can report. Kind values
// are stable and suitable for switching on; the message text attached to a
// given FormatError is not.
type Kind int

const (
	// KindFormatNotSupported means dispatch could not classify the file.
	KindFormatNotSupported Kind = iota
	// KindMalformedPage means an Ogg page header/magic was invalid.
	KindMalformedPage
	// KindMalformedStream means an Ogg packet-reassembly or rewrite
	// mirror-copy hit a structural inconsistency.
	KindMalformedStream
	// KindUnsupportedVersion means an ID3v2 major version outside {2,3,4}.
	KindUnsupportedVersion
	// KindUnexpectedEOF means a structural read ran past the end of file.
	KindUnexpectedEOF
	// KindIO means the underlying file I/O failed.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindFormatNotSupported:
		return "FormatNotSupported"
	case KindMalformedPage:
		return "MalformedPage"
	case KindMalformedStream:
		return "MalformedStream"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	case KindUnexpectedEOF:
		return "UnexpectedEof"
	case KindIO:
		return "IoError"
	default:
		return "Unknown"
	}
}

// FormatError is returned for every structural failure this package
// detects. Its Kind lets callers branch on failure class without string
// matching.
type FormatError struct {
	Kind Kind
	Msg  string
	Err  error // underlying error, if any; may be nil
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

func newErr(k Kind, msg string) error {
	return &FormatError{Kind: k, Msg: msg}
}

func wrapErr(k Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &FormatError{Kind: k, Msg: msg, Err: err}
}

// ErrFormatNotSupported is returned by NewReader/NewWriter when neither
// dispatch rule in tag.go's sniffFormat matches the input.
var ErrFormatNotSupported = &FormatError{Kind: KindFormatNotSupported, Msg: "file format not supported"}
