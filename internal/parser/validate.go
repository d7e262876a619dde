package parser

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfcpuConfig = sync.OnceValue(func() *model.Configuration {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
})

// Validate checks that data is a structurally sound PDF. Downloads that
// are really HTML error pages or truncated transfers fail here rather
// than during extraction.
func Validate(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return fmt.Errorf("validate pdf: missing %%PDF header")
	}
	if err := api.Validate(bytes.NewReader(data), pdfcpuConfig()); err != nil {
		return fmt.Errorf("validate pdf: %w", err)
	}
	return nil
}
