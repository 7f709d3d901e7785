package builder

import (
	"archive/zip"
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// MaximCount is the number of maxims in the source text
const MaximCount = 300

var (
	pageNumberRe = regexp.MustCompile(`^p\.\s*\d+$`)
	headerRe     = regexp.MustCompile(`(?i)^([ivxlcdm]+)\s*[\x{a0}—\-–]\s*(.+)$`)
	midHeaderRe  = regexp.MustCompile(`\.\s+((?:cc?[lxvi]+|[lxvi]+))\s*\x{a0}\s*(.+)$`)
	// The source misprints clvii as "civil"
	civilRe = regexp.MustCompile(`(?i)^civil\s*\x{a0}\s*(.+)$`)
)

// A repeated numeral whose title starts a known misnumbered maxim
type numeralFix struct {
	seen  int
	title string
	id    int
}

var numeralFixes = []numeralFix{
	{seen: 25, title: "Think over Things", id: 35},
	{seen: 8, title: "Let each keep up", id: 103},
	{seen: 153, title: "Mistakes about Character", id: 157},
}

// A second xcix header is a line of body text that happens to parse
const bodyNumeral = 99

type extractor struct {
	maxims  []Maxim
	current *Maxim
	seen    map[int]bool
}

func (e *extractor) start(id int, numeral, title string) {
	e.flush()
	e.current = &Maxim{ID: id, Numeral: numeral, Title: title}
	e.seen[id] = true
}

func (e *extractor) flush() {
	if e.current != nil {
		e.maxims = append(e.maxims, *e.current)
		e.current = nil
	}
}

func (e *extractor) appendBody(text string) {
	if e.current == nil || text == "" {
		return
	}
	if e.current.Body != "" {
		e.current.Body += " "
	}
	e.current.Body += text
}

// headerNumeral parses a header numeral within the maxim range
func headerNumeral(s string) (int, bool) {
	n, err := ParseNumeral(s)
	if err != nil || n < 1 || n > MaximCount {
		return 0, false
	}
	return n, true
}

func cleanTitle(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ":;.,")
}

// ExtractParagraphs splits document paragraphs into maxims. A paragraph
// opening with a numeral header starts a maxim; the rest is body text.
// Known misnumberings in the source are corrected. The result is ordered
// by id.
func ExtractParagraphs(paragraphs []string) []Maxim {
	e := &extractor{seen: make(map[int]bool)}

	for _, para := range paragraphs {
		text := strings.TrimSpace(para)
		if text == "" || pageNumberRe.MatchString(text) {
			continue
		}

		if m := civilRe.FindStringSubmatch(text); m != nil && !e.seen[157] {
			e.start(157, "clvii", cleanTitle(m[1]))
			continue
		}

		if m := headerRe.FindStringSubmatch(text); m != nil {
			if id, ok := headerNumeral(m[1]); ok {
				numeral := strings.ToLower(m[1])
				title := cleanTitle(m[2])
				if e.seen[id] {
					if id == bodyNumeral {
						e.appendBody(text)
						continue
					}
					for _, fix := range numeralFixes {
						if fix.seen == id && strings.Contains(title, fix.title) {
							id, numeral = fix.id, FormatNumeral(fix.id)
							break
						}
					}
				}
				e.start(id, numeral, title)
				continue
			}
		}

		// A header can follow the last sentence of the previous maxim
		if loc := midHeaderRe.FindStringSubmatchIndex(text); loc != nil {
			numeral := strings.ToLower(text[loc[2]:loc[3]])
			if id, ok := headerNumeral(numeral); ok && !e.seen[id] {
				e.appendBody(strings.TrimRight(strings.TrimSpace(text[:loc[2]]), "."))
				e.start(id, numeral, cleanTitle(text[loc[4]:loc[5]]))
				continue
			}
		}

		e.appendBody(text)
	}
	e.flush()

	sort.SliceStable(e.maxims, func(i, j int) bool { return e.maxims[i].ID < e.maxims[j].ID })
	return e.maxims
}

// Extract reads a plain-text export, one paragraph per line
func Extract(r io.Reader) ([]Maxim, error) {
	var paragraphs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		paragraphs = append(paragraphs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	return ExtractParagraphs(paragraphs), nil
}

// ExtractFile extracts maxims from a .docx document or a plain-text export
func ExtractFile(path string) ([]Maxim, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return Extract(f)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	paragraphs, err := DocxParagraphs(f, info.Size())
	if err != nil {
		return nil, err
	}
	return ExtractParagraphs(paragraphs), nil
}

// DocxParagraphs returns the text of each body paragraph of a .docx
// document. Paragraphs inside tables are skipped.
func DocxParagraphs(r io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open document part: %w", err)
		}
		defer rc.Close()
		return documentParagraphs(rc)
	}
	return nil, fmt.Errorf("docx has no word/document.xml")
}

func documentParagraphs(r io.Reader) ([]string, error) {
	var (
		paragraphs []string
		b          strings.Builder
		inPara     bool
		inText     bool
		tables     int
	)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paragraphs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document part: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tables++
			case "p":
				if tables == 0 {
					inPara = true
					b.Reset()
				}
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tables--
			case "p":
				if inPara {
					paragraphs = append(paragraphs, b.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}

// NumberingGaps lists ids in 1..total with no maxim, and ids taken by more
// than one maxim
func NumberingGaps(maxims []Maxim, total int) (missing, duplicates []int) {
	counts := make(map[int]int, len(maxims))
	for _, m := range maxims {
		counts[m.ID]++
	}
	for id := 1; id <= total; id++ {
		if counts[id] == 0 {
			missing = append(missing, id)
		}
	}
	for id, n := range counts {
		if n > 1 {
			duplicates = append(duplicates, id)
		}
	}
	sort.Ints(duplicates)
	return missing, duplicates
}
