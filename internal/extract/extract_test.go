package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"wevolve-backend/internal/shared/storage/object"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills: Go, PostgreSQL, Docker</w:t></w:r></w:p>
</w:body>
</w:document>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": relsXML,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), buildDocx(t), "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "PostgreSQL") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected unsupported mime error, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytes_Plain(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("  go and sql \n"), "text/plain; charset=utf-8", "cv.txt")
	if err != nil {
		t.Fatalf("extract plain: %v", err)
	}
	if text != "go and sql" {
		t.Fatalf("text = %q", text)
	}
}

func TestExtractTextFromBytes_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractTextFromBytes(ctx, []byte("x"), MimePlain, "a.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type memStore struct {
	blobs map[string][]byte
}

func (m *memStore) Put(_ context.Context, _, _, _ string, _ io.Reader) (object.Object, error) {
	return object.Object{}, errors.New("not implemented")
}

func (m *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := m.blobs[key]
	if !ok {
		return nil, object.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

func TestExtractText(t *testing.T) {
	store := &memStore{blobs: map[string][]byte{"resumes/u/cv.docx": buildDocx(t)}}

	text, err := ExtractText(context.Background(), store, "resumes/u/cv.docx", MimeDOCX, "cv.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Docker") {
		t.Fatalf("unexpected text: %q", text)
	}

	if _, err := ExtractText(context.Background(), store, "missing", MimeDOCX, "cv.docx"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDetectSkills(t *testing.T) {
	vocab := []string{"Go", "Docker", "machine learning", "c", "c++", "java", "docker"}
	text := "Built services in Go and C++.\nShipped  Machine\tLearning pipelines on docker; JavaScript frontend."

	got := DetectSkills(text, vocab)
	want := []string{"go", "docker", "machine learning", "c++"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("DetectSkills() = %v, want %v", got, want)
	}

	if none := DetectSkills("", vocab); none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}

func TestDetectSkillsWordEdges(t *testing.T) {
	vocab := []string{"node", "node.js", "java", "net", "go"}
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"dotted name is one word", "Backend in Node.js", []string{"node.js"}},
		{"sentence end", "Five years of Node.", []string{"node"}},
		{"accented letter before", "éjava tooling", []string{}},
		{"accented letter after", "goé code", []string{}},
		{"dotted prefix", "ASP.NET services", []string{}},
		{"non ascii punctuation", "«Java»·Go", []string{"java", "go"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectSkills(tc.text, vocab)
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("DetectSkills(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
