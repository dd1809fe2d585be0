package almanac

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture HTML: %v", err)
	}
	return doc
}

const linescoreHTML = `
<table>
  <tr><th></th><th>1</th><th>2</th><th>3</th><th>R</th><th>H</th><th>E</th></tr>
  <tr><td>Boston Harbormen</td><td>1</td><td>0</td><td>2</td><td>3</td><td>7</td><td>1</td></tr>
  <tr><td>Atlanta Kings</td><td>0</td><td>4</td><td>1</td><td>5</td><td>9</td><td>0</td></tr>
</table>`

const standingsHTML = `
<table>
  <tr><th>Team</th><th>W</th><th>L</th><th>PCT</th></tr>
  <tr><td>Atlanta Kings</td><td>60</td><td>40</td><td>.600</td></tr>
  <tr><td>Boston Harbormen</td><td>50</td><td>50</td><td>.500</td></tr>
</table>`

func gridHTML(rows int) string {
	var b strings.Builder
	b.WriteString("<table>\n<tr><th>Team</th><th>Apr 7</th><th>Apr 8</th><th>Apr 9</th></tr>\n")
	for i := 0; i < rows; i++ {
		b.WriteString("<tr><td>Team</td><td>BOS W 5-3</td><td></td><td>@ATL L 2-4</td></tr>\n")
	}
	b.WriteString("</table>")
	return b.String()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		html string
		want TableClass
	}{
		{"linescore", linescoreHTML, ClassLinescore},
		{"standings", standingsHTML, ClassOther},
		{"schedule grid", gridHTML(8), ClassScheduleGrid},
		{"short grid", gridHTML(3), ClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docFrom(t, tt.html)
			table := doc.Find("table").First()
			if got := Classify(table); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFindTableEnumeratesFailures(t *testing.T) {
	doc := docFrom(t, standingsHTML+linescoreHTML)

	if _, err := FindTable(doc, ClassLinescore); err != nil {
		t.Errorf("expected to find linescore table: %v", err)
	}

	_, err := FindTable(doc, ClassScheduleGrid)
	if err == nil {
		t.Fatal("expected failure for missing grid")
	}
	if !strings.Contains(err.Error(), "other") || !strings.Contains(err.Error(), "linescore") {
		t.Errorf("failure should enumerate seen classes, got: %v", err)
	}
}

func TestLooksLikeDate(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Apr 7", true},
		{"Sep 28", true},
		{"4/1", true},
		{"04-01", true},
		{"Team", false},
		{"W", false},
		{"", false},
		{"12345", false},
	}
	for _, tt := range tests {
		if got := looksLikeDate(tt.label); got != tt.want {
			t.Errorf("looksLikeDate(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
