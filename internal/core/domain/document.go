package domain

import "time"

// DocumentType classifies a legal instrument.
type DocumentType string

// Known document types, roughly in order of normative strength.
const (
	DocumentTypeConstitution DocumentType = "ANAYASA"
	DocumentTypeLaw          DocumentType = "KANUN"
	DocumentTypeDecree       DocumentType = "KHK"
	DocumentTypeBylaw        DocumentType = "TUZUK"
	DocumentTypeRegulation   DocumentType = "YONETMELIK"
	DocumentTypeCircular     DocumentType = "GENELGE"
	DocumentTypeCommunique   DocumentType = "TEBLIG"
	DocumentTypeOther        DocumentType = "DIGER"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeConstitution, DocumentTypeLaw, DocumentTypeDecree,
		DocumentTypeBylaw, DocumentTypeRegulation, DocumentTypeCircular,
		DocumentTypeCommunique, DocumentTypeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Description returns a human-readable Turkish description of the type.
func (t DocumentType) Description() string {
	switch t {
	case DocumentTypeConstitution:
		return "Anayasa"
	case DocumentTypeLaw:
		return "Kanun"
	case DocumentTypeDecree:
		return "Kanun Hükmünde Kararname"
	case DocumentTypeBylaw:
		return "Tüzük"
	case DocumentTypeRegulation:
		return "Yönetmelik"
	case DocumentTypeCircular:
		return "Genelge"
	case DocumentTypeCommunique:
		return "Tebliğ"
	case DocumentTypeOther:
		return "Diğer"
	default:
		return "Bilinmeyen"
	}
}

// Document represents a legal instrument. It owns zero or more Articles;
// deleting a document cascades to its articles.
type Document struct {
	// ID is the unique identifier assigned by the store.
	ID int64

	// Title is the official title of the instrument.
	Title string

	// LawNumber is the instrument number (e.g. "193" for Gelir Vergisi
	// Kanunu). Empty for instruments without one.
	LawNumber string

	// Type classifies the instrument.
	Type DocumentType

	// Category and Subcategory are free-form classification labels.
	Category    string
	Subcategory string

	// FilePath is where the source file lives on disk.
	FilePath string

	// StoredFilename is the name the ingestion pipeline stored the file
	// under, unique per ingest.
	StoredFilename string

	// FileHash is the SHA-256 of the source file contents, used for
	// duplicate detection. Unique across documents.
	FileHash string

	// Status is the lifecycle status (ACTIVE, REPEALED, ...).
	Status string

	// Version increments when the same instrument is re-ingested.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Article represents an addressable unit of legal text. An article belongs
// to exactly one document.
type Article struct {
	// ID is the unique identifier assigned by the store.
	ID int64

	// DocumentID links to the owning Document.
	DocumentID int64

	// Number is the article number as printed, possibly compound
	// (e.g. "5/A"). Empty when the unit has no number.
	Number string

	// Title is the optional article heading.
	Title string

	// Content is the raw article text.
	Content string

	// ContentClean is the cleaned, search-optimised form derived from
	// Content. Regenerated whenever Content changes.
	ContentClean string

	// ContentSearch is the over-inclusive indexable form (clean text,
	// ASCII-folded text, keywords, legal terms) fed to the FTS index.
	ContentSearch string

	// SeqIndex is the ordinal position within the document.
	SeqIndex int

	// IsRepealed marks the article as mülga. Repeal takes precedence
	// over amendment in display logic.
	IsRepealed bool

	// IsAmended marks the article as değişik.
	IsAmended bool

	// AmendmentNote is the free-text note describing the amendment.
	AmendmentNote string

	// Kind distinguishes articles from clauses and sub-clauses.
	// Defaults to "MADDE".
	Kind string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IndexableContent returns the text the semantic index should use:
// the cleaned form when present, the raw content otherwise.
func (a Article) IndexableContent() string {
	if a.ContentClean != "" {
		return a.ContentClean
	}
	return a.Content
}

// IndexDocument is the minimal shape the semantic index consumes when
// training: an article identity plus its indexable text.
type IndexDocument struct {
	// ArticleID identifies the article the vector maps back to.
	ArticleID int64

	// Content is the cleaned-or-raw article text.
	Content string
}
