package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/internal/providers/pdf"
	"github.com/sandevgo/ailean/pkg/log"
)

// SupportedExtensions are the manual formats the importer understands.
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

var ErrUnsupportedFormat = errors.New("unsupported manual format")

type ManualWriter interface {
	AddManual(ctx context.Context, name, content string) (core.Equipment, error)
}

type Importer struct {
	repo    ManualWriter
	extract func(path string) (string, error)
}

func NewImporter(repo ManualWriter) *Importer {
	return &Importer{
		repo:    repo,
		extract: readManual,
	}
}

// Import reads the file at path and stores its text under name.
func (i *Importer) Import(ctx context.Context, path, name string) (core.Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Equipment{}, errors.New("equipment name cannot be empty")
	}

	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return core.Equipment{}, fmt.Errorf("invalid manual path: %w", err)
	}
	if info.IsDir() {
		return core.Equipment{}, fmt.Errorf("invalid manual path: %s is a directory", path)
	}
	if !IsSupported(path) {
		return core.Equipment{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	text, err := i.extract(path)
	if err != nil {
		return core.Equipment{}, fmt.Errorf("failed to read manual: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return core.Equipment{}, fmt.Errorf("%w: %s", core.ErrNoText, filepath.Base(path))
	}

	eq, err := i.repo.AddManual(ctx, name, text)
	if err != nil {
		return core.Equipment{}, err
	}

	log.FromCtx(ctx).Info().Str("path", path).Str("equipment", eq.Name).Msg("manual imported")
	return eq, nil
}

func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// NameFromPath derives an equipment name from a file name: "M4_Carbine.pdf" -> "M4 Carbine".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ").Replace(base)
	return strings.TrimSpace(base)
}

func readManual(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdf.ExtractText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
