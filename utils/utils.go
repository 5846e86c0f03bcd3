// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/utils/perms"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

var ErrInvalidSize = errors.New("invalid size")

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	Fprintf(formatter.ColorableStdOut, format, args...)
}

// Fprintf styles [format] like [Outf] and writes the result to [w]. Markup
// and verbs are only read from [format], never from [args].
func Fprintf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprint(w, formatter.F(format, args...))
}

func GetHost(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	host, _, err := net.SplitHostPort(purl.Host)
	return host, err
}

// SaveBytes writes [b] to [filename], readable only by the owner.
func SaveBytes(filename string, b []byte) error {
	return os.WriteFile(filename, b, perms.ReadWrite)
}

// LoadBytes reads [filename] and checks it holds exactly [expectedSize] bytes.
// A negative [expectedSize] accepts any length.
func LoadBytes(filename string, expectedSize int) ([]byte, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(bytes) != expectedSize {
		return nil, fmt.Errorf("%w: expected=%d found=%d", ErrInvalidSize, expectedSize, len(bytes))
	}
	return bytes, nil
}
