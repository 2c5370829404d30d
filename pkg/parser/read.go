package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ForEachLine calls fn with every line of r, without its "\n" or "\r\n"
// terminator. Lines have no length limit. A trailing line without a
// terminator is still delivered. An error from fn stops the read and is
// returned unchanged.
func ForEachLine(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReaderSize(r, 64*1024)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line == "" && err != nil {
			return nil
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if ferr := fn(line); ferr != nil {
			return ferr
		}

		if err != nil {
			return nil
		}
	}
}
