package payments

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// this file contains the transaction log reader.
//
// The log is a CSV file with a header line. Columns are identified by name:
// 'type', 'client', 'tx' and 'amount'. Spaces around fields are ignored and
// the amount may be empty or missing altogether for dispute, resolve and
// chargeback rows.
//
//	type, client, tx, amount
//	deposit, 1, 1, 1.0
//	dispute, 1, 1,

// RowError is a malformed row. Other rows can still be read after it.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// row is a raw CSV row, validated before conversion.
type row struct {
	Type   string `validate:"required,oneof=deposit withdrawal dispute resolve chargeback"`
	Client string `validate:"required,number"`
	Tx     string `validate:"required,number"`
	Amount string // parsed as a decimal, ".5" and "1." included.
}

var requiredColumns = []string{"type", "client", "tx"}

// Decoder reads records from a transaction log.
type Decoder struct {
	r        *csv.Reader
	columns  map[string]int
	validate *validator.Validate
	err      error // sticky header error.
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // trailing amount is optional.
	cr.TrimLeadingSpace = true
	return &Decoder{r: cr, validate: validator.New()}
}

// header reads the column names once.
func (d *Decoder) header() error {
	if d.columns != nil || d.err != nil {
		return d.err
	}
	names, err := d.r.Read()
	if err == io.EOF {
		d.err = errors.New("empty transaction log: missing header")
		return d.err
	}
	if err != nil {
		d.err = fmt.Errorf("cannot read header: %w", err)
		return d.err
	}
	columns := make(map[string]int)
	for i, name := range names {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff") // UTF-8 byte order mark.
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			d.err = fmt.Errorf("invalid header %q: missing column %q", strings.Join(names, ","), name)
			return d.err
		}
	}
	d.columns = columns
	return nil
}

// field returns the trimmed value of a named column, or "" if the row is too short.
func (d *Decoder) field(fields []string, name string) string {
	i, ok := d.columns[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// Decode returns the next record, or io.EOF at the end of the log.
//
// A malformed row is reported as a *RowError, and the following call
// continues with the next row. Any other error is final.
func (d *Decoder) Decode() (Record, error) {
	if err := d.header(); err != nil {
		return Record{}, err
	}
	fields, err := d.r.Read()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return Record{}, &RowError{Line: perr.Line, Err: perr.Err}
	}
	if err != nil {
		return Record{}, fmt.Errorf("cannot read transaction log: %w", err)
	}
	line, _ := d.r.FieldPos(0)

	rec, err := d.convert(fields)
	if err != nil {
		return Record{}, &RowError{Line: line, Err: err}
	}
	return rec, nil
}

// convert validates and converts a raw row.
func (d *Decoder) convert(fields []string) (Record, error) {
	raw := row{
		Type:   strings.ToLower(d.field(fields, "type")),
		Client: d.field(fields, "client"),
		Tx:     d.field(fields, "tx"),
		Amount: d.field(fields, "amount"),
	}
	if err := d.validate.Struct(raw); err != nil {
		return Record{}, validationError(err)
	}

	client, err := strconv.ParseUint(raw.Client, 10, 16)
	if err != nil {
		return Record{}, fmt.Errorf("client %q out of range", raw.Client)
	}
	tx, err := strconv.ParseUint(raw.Tx, 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("tx %q out of range", raw.Tx)
	}
	kind, err := ParseKind(raw.Type)
	if err != nil {
		return Record{}, err
	}
	rec := Record{Kind: kind, Client: uint16(client), Tx: uint32(tx)}

	if raw.Amount != "" {
		amount, err := ParseAmount(raw.Amount)
		if err != nil {
			return Record{}, err
		}
		if amount.IsNegative() {
			return Record{}, fmt.Errorf("negative amount %s", raw.Amount)
		}
		rec.Amount = &amount
	}
	return rec, nil
}

// validationError turns validator errors into a readable message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("missing %s", field))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("invalid %s %q", field, fe.Value()))
	}
	return errors.New(strings.Join(msgs, ", "))
}

// ReadRecords reads all records from d.
//
// With [Continue], malformed rows are skipped and returned joined in the
// error, together with all the valid records. With [Abort], the first
// malformed row stops the reading.
func ReadRecords(d *Decoder, policy Policy) ([]Record, error) {
	var records []Record
	var errs error
	for {
		rec, err := d.Decode()
		if err == io.EOF {
			return records, errs
		}
		var rerr *RowError
		if errors.As(err, &rerr) && policy == Continue {
			errs = errors.Join(errs, err)
			continue
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// DecodeRecords reads a whole transaction log, failing on the first malformed row.
func DecodeRecords(r io.Reader) ([]Record, error) {
	return ReadRecords(NewDecoder(r), Abort)
}
