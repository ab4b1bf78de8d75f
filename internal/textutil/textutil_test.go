package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords_OnlyStopWords(t *testing.T) {
	assert.Empty(t, ExtractKeywords("<p>the and with about their would</p>", 5))
	assert.Empty(t, ExtractKeywords("", 5))
}

func TestExtractKeywords_FrequencyThenFirstSeen(t *testing.T) {
	body := `<h1>Password reset</h1>
		<p>Reset your password from the account page. The account page lists
		devices. Devices can be removed. Password rules apply.</p>`

	got := ExtractKeywords(body, 4)

	// reset, account, page and devices all appear twice; first seen wins
	require.Len(t, got, 4)
	assert.Equal(t, []string{"password", "reset", "account", "page"}, got[:4])
}

func TestExtractKeywords_DropsShortWordsAndMarkup(t *testing.T) {
	got := ExtractKeywords(`<a href="https://example.com/longurl">api key</a> tokens tokens`, 10)
	assert.Equal(t, []string{"tokens"}, got)
}

func TestExtractKeywords_DefaultCount(t *testing.T) {
	body := "alpha bravo charlie delta echos foxtrot golfs hotel india juliet kilos lima2"
	assert.Len(t, ExtractKeywords(body, 0), 10)
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 0, ReadTime(""))
	assert.Equal(t, 0, ReadTime("<p>   </p>"))
	assert.Equal(t, 1, ReadTime("<p>one</p>"))
	assert.Equal(t, 1, ReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("word ", 201)))
}

func TestReadTime_Monotonic(t *testing.T) {
	prev := 0
	for n := 1; n <= 1000; n += 37 {
		rt := ReadTime(strings.Repeat("w ", n))
		assert.GreaterOrEqual(t, rt, prev)
		assert.GreaterOrEqual(t, rt, 1)
		prev = rt
	}
}

func TestPlainText(t *testing.T) {
	in := `<p>Hello&nbsp;<b>world</b></p><script>alert("x")</script><style>p{}</style><br/>bye &amp; done`
	assert.Equal(t, "Hello world bye & done", PlainText(in))
	assert.Equal(t, "no markup here", PlainText("  no   markup\nhere "))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("<p>short</p>", 20))
	assert.Equal(t, "How to reset your...", Excerpt("<p>How to reset your password quickly</p>", 20))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "getting-started-with-cafe", Slugify("  Getting Started with Café! "))
	assert.Equal(t, "", Slugify("   "))
	assert.Equal(t, "a-b", Slugify("a -- b"))
}

func TestCleanTags(t *testing.T) {
	assert.Equal(t, []string{"billing", "how to"}, CleanTags([]string{" Billing", "", "billing", "How  To"}))
}


func TestSanitizeHTML(t *testing.T) {
	out := SanitizeHTML(`<p onclick="x()">Hi <strong>there</strong></p><script>alert(1)</script><a href="javascript:evil()">x</a>`)
	assert.Contains(t, out, "<strong>there</strong>")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "line one\nline <two> & three", StripTags("<b>line one</b>\nline &lt;two&gt; &amp; three "))
	assert.Equal(t, "plain", StripTags("  plain "))
}
