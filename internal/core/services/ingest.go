package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mevzuat-labs/mevzuat-cli/internal/analyzer"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driven"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driving"
	"github.com/mevzuat-labs/mevzuat-cli/internal/logger"
)

// articleHeading matches "MADDE 5", "Madde 5/A" at the start of a line,
// with an optional dash, dot or colon separator.
var articleHeading = regexp.MustCompile(`(?m)^[ \t]*(?:MADDE|Madde)\s+(\d+(?:/[A-Za-zÇĞİÖŞÜçğıöşü]+)?)\s*[-–—.:]?[ \t]*`)

// lawNumberPattern picks the instrument number out of "193 sayılı Gelir
// Vergisi Kanunu" style references.
var lawNumberPattern = regexp.MustCompile(`(?i)\b(\d{3,5})\s*sayılı\b`)

// repealMarkers and amendmentMarkers flag mülga and değişik articles. The
// text is lowercased before matching.
var repealMarkers = []*regexp.Regexp{
	regexp.MustCompile(`mülga(?:dır)?`),
	regexp.MustCompile(`yürürlük(?:ten)?\s+kalkmış(?:tır)?`),
	regexp.MustCompile(`iptal\s+edilmiş(?:tir)?`),
	regexp.MustCompile(`kaldırılmış(?:tır)?`),
}

var amendmentMarkers = []*regexp.Regexp{
	regexp.MustCompile(`değiş(?:tiril|en)(?:miş(?:tir)?)?`),
	regexp.MustCompile(`eklen(?:miş(?:tir)?)?`),
	regexp.MustCompile(`yeniden\s+düzenlen(?:miş(?:tir)?)?`),
	regexp.MustCompile(`tadil\s+edilmiş(?:tir)?`),
}

// typeKeywords maps title keywords to document types, checked in order so
// "kanun hükmünde kararname" wins over the bare "kanun".
var typeKeywords = []struct {
	keyword string
	docType domain.DocumentType
}{
	{"anayasa", domain.DocumentTypeConstitution},
	{"kanun hükmünde kararname", domain.DocumentTypeDecree},
	{"tüzük", domain.DocumentTypeBylaw},
	{"yönetmelik", domain.DocumentTypeRegulation},
	{"genelge", domain.DocumentTypeCircular},
	{"yönerge", domain.DocumentTypeCircular},
	{"tebliğ", domain.DocumentTypeCommunique},
	{"kanun", domain.DocumentTypeLaw},
	{"yasa", domain.DocumentTypeLaw},
}

// Ensure Ingestor implements the interface.
var _ driving.IngestService = (*Ingestor)(nil)

// Ingestor turns UTF-8 text files into persisted, indexed documents.
type Ingestor struct {
	articles driven.ArticleStore
	semantic driven.SemanticIndex
	analyzer *analyzer.Analyzer
}

// NewIngestor wires the ingestion pipeline.
func NewIngestor(articles driven.ArticleStore, semantic driven.SemanticIndex) *Ingestor {
	return &Ingestor{
		articles: articles,
		semantic: semantic,
		analyzer: analyzer.New(),
	}
}

// IngestFile reads a UTF-8 text file, splits it into articles on MADDE
// headings and persists document plus articles. Metadata absent from meta
// is detected from the file content. A file whose hash is already stored
// yields domain.ErrDuplicateDocument.
func (s *Ingestor) IngestFile(ctx context.Context, path string, meta driving.IngestMeta) (*domain.Document, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, 0, fmt.Errorf("%s: %w", path, domain.ErrNoContent)
	}
	if !utf8.ValidString(text) {
		return nil, 0, fmt.Errorf("%s is not valid UTF-8", path)
	}

	hash := sha256.Sum256(raw)

	title := meta.Title
	if title == "" {
		title = firstLine(text)
	}
	lawNumber := meta.LawNumber
	if lawNumber == "" {
		lawNumber = detectLawNumber(title, text)
	}
	docType := meta.Type
	if !docType.IsValid() {
		docType = detectDocumentType(title)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	doc := &domain.Document{
		Title:          title,
		LawNumber:      lawNumber,
		Type:           docType,
		Category:       meta.Category,
		FilePath:       absPath,
		StoredFilename: uuid.New().String() + filepath.Ext(path),
		FileHash:       hex.EncodeToString(hash[:]),
		Status:         "ACTIVE",
		Version:        1,
	}

	docID, err := s.articles.SaveDocument(ctx, doc)
	if err != nil {
		return nil, 0, err
	}
	doc.ID = docID

	articles := s.splitArticles(text)
	for i := range articles {
		articles[i].DocumentID = docID
	}

	ids, err := s.articles.SaveArticles(ctx, articles)
	if err != nil {
		return nil, 0, fmt.Errorf("saving articles of %s: %w", path, err)
	}

	// Semantic indexing is best effort; a failure leaves the article
	// reachable through the keyword path until the next rebuild.
	for i, id := range ids {
		content := articles[i].IndexableContent()
		if utf8.RuneCountInString(content) <= minIndexableContentLen {
			continue
		}
		if err := s.semantic.AddDocument(ctx, id, content); err != nil {
			logger.Warn("indexing article %d: %v", id, err)
		}
	}

	logger.Info("ingested %s: document %d, %d articles", filepath.Base(path), docID, len(articles))
	return doc, len(articles), nil
}

// splitArticles cuts the text into articles on MADDE headings. A text
// without any heading becomes a single un-numbered article so nothing is
// ever silently dropped.
func (s *Ingestor) splitArticles(text string) []domain.Article {
	headings := articleHeading.FindAllStringSubmatchIndex(text, -1)
	if len(headings) == 0 {
		return []domain.Article{s.buildArticle("1", "", text, 0)}
	}

	articles := make([]domain.Article, 0, len(headings))
	for i, loc := range headings {
		number := text[loc[2]:loc[3]]
		bodyStart := loc[1]
		bodyEnd := len(text)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1][0]
		}
		title, content := splitTitleContent(strings.TrimSpace(text[bodyStart:bodyEnd]))
		articles = append(articles, s.buildArticle(number, title, content, i))
	}
	return articles
}

func (s *Ingestor) buildArticle(number, title, content string, seq int) domain.Article {
	isRepealed, isAmended, note := detectStatus(content)
	return domain.Article{
		Number:        number,
		Title:         title,
		Content:       content,
		ContentClean:  s.analyzer.Clean(content),
		ContentSearch: s.analyzer.PrepareForFTS(content),
		SeqIndex:      seq,
		IsRepealed:    isRepealed,
		IsAmended:     isAmended,
		AmendmentNote: note,
		Kind:          "MADDE",
	}
}

// splitTitleContent treats a short first line as the article heading.
// Long first lines belong to the body; headings over 100 characters are
// not headings.
func splitTitleContent(block string) (string, string) {
	line, rest, found := strings.Cut(block, "\n")
	line = strings.TrimSpace(line)
	if found {
		if utf8.RuneCountInString(line) > 100 {
			return "", block
		}
		return line, strings.TrimSpace(rest)
	}
	return "", block
}

// detectStatus flags repealed and amended articles from their text.
// Repeal takes precedence; an article is never both.
func detectStatus(content string) (repealed, amended bool, note string) {
	lowered := strings.ToLower(content)
	for _, re := range repealMarkers {
		if re.MatchString(lowered) {
			return true, false, "Mülga"
		}
	}
	for _, re := range amendmentMarkers {
		if m := re.FindString(lowered); m != "" {
			return false, true, "Değişiklik: " + m
		}
	}
	return false, false, ""
}

// detectLawNumber looks for "<n> sayılı" in the title first, then in the
// opening of the body.
func detectLawNumber(title, text string) string {
	if m := lawNumberPattern.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	head := text
	if len(head) > 500 {
		head = head[:500]
	}
	if m := lawNumberPattern.FindStringSubmatch(head); m != nil {
		return m[1]
	}
	return ""
}

// detectDocumentType classifies an instrument from its title keywords.
func detectDocumentType(title string) domain.DocumentType {
	lowered := strings.ToLower(title)
	for _, tk := range typeKeywords {
		if strings.Contains(lowered, tk.keyword) {
			return tk.docType
		}
	}
	return domain.DocumentTypeOther
}

// firstLine returns the first non-empty line of the text, capped at 200
// runes for degenerate single-line files.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > 200 {
			runes := []rune(line)
			return string(runes[:200])
		}
		return line
	}
	return ""
}
