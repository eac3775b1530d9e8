// Package dataset writes and checks the line-delimited JSON files consumed by
// the trainer.
package dataset

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/envelope"
)

const (
	TrainFile = "train.jsonl"
	ValFile   = "val.jsonl"
)

// ErrMalformedRecord marks a dataset line that is not a single-key text record.
var ErrMalformedRecord = errors.New("malformed record")

// FileInfo describes one written dataset file.
type FileInfo struct {
	Path   string
	Lines  int
	Bytes  int64
	SHA256 string
}

// Files are the outputs of WriteSplit.
type Files struct {
	Train FileInfo
	Val   FileInfo
}

// WriteJSONL writes one {"text": envelope} object per line and returns the
// number of lines written.
func WriteJSONL(w io.Writer, examples []domain.GeneratedExample) (int, error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, ex := range examples {
		if err := enc.Encode(envelope.NewRecord(ex)); err != nil {
			return i, fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	return len(examples), nil
}

// WriteSplit creates dir and writes the train and validation files of p.
func WriteSplit(dir string, p domain.Partition) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	train, err := writeFile(filepath.Join(dir, TrainFile), p.Train)
	if err != nil {
		return nil, err
	}
	val, err := writeFile(filepath.Join(dir, ValFile), p.Validation)
	if err != nil {
		return nil, err
	}
	return &Files{Train: train, Val: val}, nil
}

func writeFile(path string, examples []domain.GeneratedExample) (info FileInfo, err error) {
	f, err := os.Create(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	h := sha256.New()
	cw := &countingWriter{w: io.MultiWriter(f, h)}
	bw := bufio.NewWriter(cw)
	n, err := WriteJSONL(bw, examples)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return FileInfo{}, fmt.Errorf("flushing %s: %w", path, err)
	}
	return FileInfo{
		Path:   path,
		Lines:  n,
		Bytes:  cw.n,
		SHA256: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Report is the outcome of VerifyFile.
type Report struct {
	Path   string
	Lines  int
	Bytes  int64
	SHA256 string
	// Kinds counts task_creation records (assistant turn is a JSON object)
	// versus tech_qa records.
	Kinds map[domain.ExampleKind]int
}

// VerifyFile checks that every line of path is a JSON object with exactly one
// "text" key holding a well-formed envelope. It stops at the first bad line.
func VerifyFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	r := &Report{Path: path, Kinds: make(map[domain.ExampleKind]int)}
	sc := bufio.NewScanner(io.TeeReader(f, h))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		r.Lines++
		r.Bytes += int64(len(line)) + 1
		kind, err := verifyLine(line)
		if err != nil {
			return r, fmt.Errorf("%s:%d: %w", path, r.Lines, err)
		}
		r.Kinds[kind]++
	}
	if err := sc.Err(); err != nil {
		return r, fmt.Errorf("reading %s: %w", path, err)
	}
	r.SHA256 = hex.EncodeToString(h.Sum(nil))
	return r, nil
}

func verifyLine(line []byte) (domain.ExampleKind, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	raw, ok := fields["text"]
	if !ok || len(fields) != 1 {
		return "", fmt.Errorf("%w: want exactly one \"text\" key, got %d keys", ErrMalformedRecord, len(fields))
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", fmt.Errorf("%w: text is not a string", ErrMalformedRecord)
	}
	turns, err := envelope.Parse(text)
	if err != nil {
		return "", err
	}
	if json.Valid([]byte(turns.Assistant)) && bytes.HasPrefix(bytes.TrimSpace([]byte(turns.Assistant)), []byte("{")) {
		return domain.KindTaskCreation, nil
	}
	return domain.KindTechQA, nil
}
