package interpret

import (
	"regexp"
	"sort"
	"strings"
)

// monthNames lists English and Filipino month names and abbreviations by month.
var monthNames = [13][]string{
	1:  {"january", "jan", "enero"},
	2:  {"february", "feb", "pebrero"},
	3:  {"march", "mar", "marso"},
	4:  {"april", "apr", "abril"},
	5:  {"may", "mayo"},
	6:  {"june", "jun", "hunyo"},
	7:  {"july", "jul", "hulyo"},
	8:  {"august", "aug", "agosto"},
	9:  {"september", "sep", "sept", "setyembre", "septiyembre"},
	10: {"october", "oct", "oktubre"},
	11: {"november", "nov", "nobyembre"},
	12: {"december", "dec", "disyembre"},
}

var monthNumbers = func() map[string]int {
	m := make(map[string]int)
	for month, names := range monthNames {
		for _, name := range names {
			m[name] = month
		}
	}
	return m
}()

// monthAlternation is a regexp alternation of every month name, longest
// first so "march" wins over "mar".
var monthAlternation = func() string {
	names := make([]string, 0, len(monthNumbers))
	for name := range monthNumbers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}()

// monthNumber returns the month for a name, or 0.
func monthNumber(name string) int {
	return monthNumbers[strings.ToLower(name)]
}

// nonNameWords are tokens that never form part of an extracted name.
var nonNameWords = wordSet(
	// English filler and keywords
	"about", "around", "approximately", "roughly", "maybe", "probably",
	"possibly", "likely", "think", "was", "were", "been", "have", "has",
	"died", "born", "bornd", "buried", "old", "years", "year", "age", "aged",
	"the", "and", "or", "but", "from", "with", "for", "this", "that",
	"find", "search", "show", "tell", "help", "where", "who", "what", "when",
	"someone", "somebody", "person", "people", "named", "called",
	"could", "would", "should", "will", "can", "may", "might",
	"he", "she", "they", "his", "her", "hes", "shes", "him", "them",
	"is", "are", "am", "be", "do", "does", "did", "not", "no", "yes",
	"at", "in", "on", "of", "to", "by", "up", "an", "if", "so", "it", "me", "we",
	"please", "you", "your", "my", "our", "their", "need", "want", "let",
	"look", "looking", "searching", "locate", "know", "any", "record", "records", "data",
	"passed", "deceased", "death", "birth", "grave", "graves", "tomb", "plot", "lot",
	"niche", "cemetery", "memorial", "park", "burial",
	"father", "dad", "mother", "mom", "son", "daughter", "brother", "sister",
	"wife", "husband", "family", "mr", "mrs", "ms", "dr",
	"between", "through", "until", "since", "before", "after", "also", "there", "here",

	// Filipino filler and keywords
	"namatay", "pumanaw", "yumao", "yumaong", "ipinanganak", "isinilang", "nailibing",
	"siguro", "marahil",
	"hanap", "hanapin", "nasaan", "sino", "ano", "alin", "saan", "kailan",
	"asan", "nasan", "ayan",
	"tao", "taong", "pangalan", "name", "yung", "yun", "ang", "nga",
	"pwede", "maaari", "gusto", "nais", "kailangan", "lang", "naman",
	"kasi", "kung", "kapag", "pag", "para", "dahil",
	"si", "ni", "kay", "sa", "na", "ng", "ba", "po", "mga", "ko", "mo",
	"sementeryo", "puntod", "libingan", "nitso", "pamilya",
	"tatay", "nanay", "asawa", "anak", "kapatid",
	"noong", "nung", "nang", "mula", "simula", "hanggang", "hasta", "pagitan",
)

// isLikelyName reports whether word may be part of a person's name.
func isLikelyName(word string) bool {
	w := strings.ToLower(strings.Trim(word, ".,;:!?\"'()"))
	if len([]rune(w)) <= 1 {
		return false
	}
	_, filler := nonNameWords[w]
	return !filler
}

// filipinoKeywords mark a query as likely written in Filipino.
var filipinoKeywords = wordSet(
	"hanap", "hanapin", "nasaan", "saan", "namatay", "pumanaw", "yumao",
	"ipinanganak", "libing", "libingan", "puntod", "nitso", "kamatayan",
	"nailibing", "pamilya", "angkan", "lahi", "kamag-anak", "yumaong",
	"hinahanap", "hinanap", "namayapa", "sumakabilang-buhay", "katawan", "patay",
	"bata", "matanda", "asawa", "anak", "ina", "ama", "magulang", "kapatid",
	"pwede", "maaari", "gusto", "nais", "kailangan", "tulungan", "pakihanap",
	"magtanong", "tanong", "sige", "kasi", "yung", "yun", "nga", "naman", "lang", "po",
	"sino", "alin", "ano", "paano", "bakit", "kailan", "magkano",
	"taong", "edad", "gulang", "taon", "buwan", "araw",
)

// surnameParticles start a compound surname ("dela Cruz", "de los Santos").
var surnameParticles = wordSet(
	"de", "del", "dela", "delos", "delas", "la", "los", "san", "santa",
	"sta", "sto", "van", "von", "di", "da",
)

var (
	birthKeywords = []string{"born", "birth", "ipinanganak", "isinilang", "kapanganakan", "bornd"}
	deathKeywords = []string{
		"died", "death", "passed", "buried", "deceased",
		"namatay", "pumanaw", "yumao", "yumaong", "nailibing", "kamatayan",
	}
)

var tokenSplitter = regexp.MustCompile(`[^\p{L}\p{N}'-]+`)

// tokens splits s into lower-cased words, keeping hyphens and apostrophes.
func tokens(s string) []string {
	var out []string
	for _, t := range tokenSplitter.Split(strings.ToLower(s), -1) {
		t = strings.Trim(t, "'-")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
