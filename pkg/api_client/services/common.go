package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyWorkflow is returned when provided workflow content is empty
var ErrEmptyWorkflow = errors.New("leeg workflow document (geen inhoud)")

// ErrInvalidWorkflow is returned when the document cannot be turned into a graph
var ErrInvalidWorkflow = errors.New("ongeldig workflow document")

// GuessExt raadt de bestandsextensie (json of yaml) op basis van inhoud
func GuessExt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return ".json"
	}
	return ".yaml"
}

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename maakt een bestandsnaam veilig
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	name = filenameRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-._")
	return name
}

// zipEntry is één bestand in een ZIP archief
type zipEntry struct {
	Name string
	Data []byte
}

// ZipFiles pakt de bestanden in de gegeven volgorde in als ZIP en geeft bytes terug
func ZipFiles(files []zipEntry) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			_ = zw.Close()
			return nil, err
		}
		if _, err := w.Write(f.Data); err != nil {
			_ = zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
