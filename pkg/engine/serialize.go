package engine

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"schoolbuild/pkg/schema"
)

// EncodeCSV writes ds as comma-separated UTF-8 text with a header row in
// schema order.
func EncodeCSV(w io.Writer, ds *schema.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Schema.Header()); err != nil {
		return fmt.Errorf("writing %s header: %w", ds.Schema.Name, err)
	}
	for i := 0; i < ds.Len(); i++ {
		if err := cw.Write(ds.Strings(i)); err != nil {
			return fmt.Errorf("writing %s row %d: %w", ds.Schema.Name, i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCSV renders ds with EncodeCSV.
func MarshalCSV(ds *schema.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
