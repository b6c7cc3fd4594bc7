package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mevzuat-labs/mevzuat-cli/internal/analyzer"
)

func newTestHighlighter() *highlighter {
	return newHighlighter(analyzer.New())
}

func TestHighlighter_Keyword_MarksSuffixedForm(t *testing.T) {
	h := newTestHighlighter()
	content := "Bu kanunun amacı gelir üzerinden alınan vergilerin esaslarını düzenlemektir."

	snippets := h.Keyword(content, "kanun")
	require.NotEmpty(t, snippets)
	assert.Contains(t, snippets[0], "<mark>kanunun</mark>")
}

func TestHighlighter_Keyword_CaseInsensitive(t *testing.T) {
	h := newTestHighlighter()
	content := "KANUN hükümleri saklıdır."

	snippets := h.Keyword(content, "kanun")
	require.NotEmpty(t, snippets)
	assert.Contains(t, snippets[0], "<mark>KANUN</mark>")
}

func TestHighlighter_Keyword_LeftWordBoundary(t *testing.T) {
	h := newTestHighlighter()

	// "kanun" embedded in a larger word must not match.
	snippets := h.Keyword("Anakanunda böyle bir hüküm yok.", "kanun")
	assert.Empty(t, snippets)
}

func TestHighlighter_Keyword_FoldedVariant(t *testing.T) {
	h := newTestHighlighter()

	// ASCII-typed source text still matches a diacritic query through
	// the folded variant.
	snippets := h.Keyword("Her kisi kanun onunde esittir.", "kişi")
	require.NotEmpty(t, snippets)
	assert.Contains(t, snippets[0], "<mark>kisi</mark>")
}

func TestHighlighter_Keyword_CapAndDedupe(t *testing.T) {
	h := newTestHighlighter()
	content := strings.Repeat("Vergi mükellefi beyanname verir ve vergi öder; vergi dairesi tahsil eder. ", 4)

	snippets := h.Keyword(content, "vergi")
	assert.LessOrEqual(t, len(snippets), maxHighlights)
	seen := make(map[string]struct{})
	for _, s := range snippets {
		_, dup := seen[s]
		assert.False(t, dup, "duplicate snippet %q", s)
		seen[s] = struct{}{}
	}
}

func TestHighlighter_Keyword_ShortWordsIgnored(t *testing.T) {
	h := newTestHighlighter()
	assert.Empty(t, h.Keyword("ve ile de bu", "ve"))
}

func TestHighlighter_Keyword_NoMatch(t *testing.T) {
	h := newTestHighlighter()
	assert.Empty(t, h.Keyword("Tamamen alakasız bir metin.", "miras"))
}

func TestHighlighter_FallbackSnippets(t *testing.T) {
	h := newTestHighlighter()
	content := "Gelir vergisi her takvim yılında tahakkuk eder."

	snippets := h.fallbackSnippets(content, "vergisi")
	require.Len(t, snippets, 1)
	assert.Contains(t, snippets[0], "<mark>vergisi</mark>")
}

func TestHighlighter_Semantic(t *testing.T) {
	h := newTestHighlighter()
	content := "Kısa. Bu cümle yeterince uzun olduğu için önizlemeye girer. Bu da ikinci yeterince uzun cümledir. Üçüncü uzun cümle artık listeye giremez çünkü sınır ikidir."

	snippets := h.Semantic(content)
	require.Len(t, snippets, maxSemanticSnips)
	assert.Equal(t, "Bu cümle yeterince uzun olduğu için önizlemeye girer", snippets[0])
	assert.Equal(t, "Bu da ikinci yeterince uzun cümledir", snippets[1])
}

func TestHighlighter_Semantic_AllShort(t *testing.T) {
	h := newTestHighlighter()
	assert.Empty(t, h.Semantic("Kısa. Yine kısa. Uf."))
}

func TestMarkSnippet_RuneBoundaries(t *testing.T) {
	// Multi-byte letters around the window edges must never be split.
	content := strings.Repeat("çğıöşü", 40)
	start := strings.Index(content, "ğ")
	snippet := markSnippet(content, start, start+len("ğ"), highlightRadius)

	assert.True(t, utf8.ValidString(snippet))
	assert.Contains(t, snippet, "<mark>ğ</mark>")
}

func TestMarkSnippet_WindowClampedToContent(t *testing.T) {
	content := "kanun"
	snippet := markSnippet(content, 0, len(content), highlightRadius)
	assert.Equal(t, "<mark>kanun</mark>", snippet)
}
