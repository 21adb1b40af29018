package variants

import (
	"sort"
	"strings"
)

// NicknameTable maps informal names to the formal names they abbreviate.
// A table is read-only once built; lookups work in both directions.
type NicknameTable struct {
	formal   map[string][]string // nickname -> formal names
	informal map[string][]string // formal name -> nicknames
}

// NewNicknameTable builds a bidirectional table from nickname -> formal names.
// Keys and values must already be normalized (see Normalize).
func NewNicknameTable(entries map[string][]string) *NicknameTable {
	t := &NicknameTable{
		formal:   make(map[string][]string, len(entries)),
		informal: make(map[string][]string),
	}
	nicknames := make([]string, 0, len(entries))
	for nick := range entries {
		nicknames = append(nicknames, nick)
	}
	// Map iteration order is random; sort so reverse lists are deterministic.
	sort.Strings(nicknames)
	for _, nick := range nicknames {
		formals := append([]string(nil), entries[nick]...)
		t.formal[nick] = formals
		for _, f := range formals {
			t.informal[f] = append(t.informal[f], nick)
		}
	}
	return t
}

// Expand returns the de-duplicated union of the original name, its
// normalized form, every formal name it abbreviates and, when the name is
// itself formal, every nickname for it along with the sibling formal names
// sharing that nickname.
func (t *NicknameTable) Expand(name string) []string {
	normalized := Normalize(name)
	out := newOrderedSet(name, normalized)
	if normalized == "" {
		return out.items()
	}

	out.add(t.formal[normalized]...)
	for _, nick := range t.informal[normalized] {
		out.add(nick)
		out.add(t.formal[nick]...)
	}
	return out.items()
}

// Nicknames returns the nicknames recorded for a formal name.
func (t *NicknameTable) Nicknames(formal string) []string {
	return append([]string(nil), t.informal[Normalize(formal)]...)
}

// Formal returns the formal names recorded for a nickname.
func (t *NicknameTable) Formal(nickname string) []string {
	return append([]string(nil), t.formal[Normalize(nickname)]...)
}

// Nicknames is the process-wide English and Filipino table.
var Nicknames = NewNicknameTable(map[string][]string{
	// English
	"bob":    {"robert", "roberto"},
	"bobby":  {"robert", "roberto"},
	"rob":    {"robert", "roberto"},
	"mike":   {"michael", "miguel"},
	"mikey":  {"michael", "miguel"},
	"chris":  {"christopher", "christian", "cristina", "christine"},
	"alex":   {"alexander", "alexandra", "alejandro", "alejandra"},
	"tony":   {"antonio", "anthony", "antonia"},
	"joe":    {"joseph", "jose", "josefa"},
	"joey":   {"joseph", "jose"},
	"bill":   {"william", "guillermo"},
	"billy":  {"william", "guillermo"},
	"will":   {"william", "guillermo"},
	"dick":   {"richard", "ricardo"},
	"rick":   {"richard", "ricardo"},
	"jim":    {"james", "jaime"},
	"jimmy":  {"james", "jaime"},
	"beth":   {"elizabeth", "isabel", "isabela"},
	"liz":    {"elizabeth", "elisabet"},
	"tom":    {"thomas", "tomas"},
	"tommy":  {"thomas", "tomas"},
	"dan":    {"daniel", "danilo"},
	"danny":  {"daniel", "danilo"},
	"sam":    {"samuel", "samantha", "samson"},
	"max":    {"maximilian", "maximo", "maxima"},
	"ben":    {"benjamin", "benito", "benigno"},
	"benny":  {"benjamin", "benito", "benigno"},
	"matt":   {"matthew", "mateo"},
	"dave":   {"david", "davina"},
	"ann":    {"anna", "anne", "ana", "anita"},
	"annie":  {"anna", "anne", "ana", "anita"},
	"sue":    {"susan", "susana", "suzanne"},
	"kate":   {"katherine", "catalina", "katrina"},
	"katie":  {"katherine", "catalina", "katrina"},
	"meg":    {"margaret", "margarita"},
	"maggie": {"margaret", "margarita"},

	// Filipino
	"jun":      {"junior", "jejomar", "antonio"},
	"boy":      {"rogelio", "rodrigo", "roberto"},
	"dodong":   {"rodolfo", "rodrigo"},
	"nene":     {"irene", "nenita", "nena"},
	"baby":     {"benigno", "benita"},
	"totoy":    {"victor", "victorio"},
	"inday":    {"linda", "rosalinda"},
	"lito":     {"carlito", "angelito", "juanito"},
	"lita":     {"carlita", "angelita"},
	"bing":     {"benigno", "bienvenido"},
	"dong":     {"armando", "eduardo", "fernando"},
	"dodo":     {"teodoro", "rodolfo"},
	"pepe":     {"jose", "joseph"},
	"peping":   {"jose", "joseph"},
	"bong":     {"bienvenido", "bonifacio"},
	"bongbong": {"ferdinand", "bonifacio"},
	"coring":   {"socorro", "corazon"},
	"cora":     {"corazon", "socorro"},
	"ditas":    {"edita", "perdita"},
	"neneng":   {"irene", "nenita"},
	"tita":     {"teresita", "juanita"},
	"tito":     {"teresito", "albertito"},
	"kikay":    {"francisca", "francheska"},
	"kiko":     {"francisco", "enrico"},
	"chito":    {"jose", "francisco"},
	"nening":   {"magdalena", "elena"},
	"ding":     {"bernardino", "orlando"},
	"ping":     {"josefina", "pilar"},
})

// ExpandNicknames expands a name through the process-wide table.
func ExpandNicknames(name string) []string {
	return Nicknames.Expand(name)
}

type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func newOrderedSet(items ...string) *orderedSet {
	s := &orderedSet{seen: make(map[string]struct{})}
	s.add(items...)
	return s
}

func (s *orderedSet) add(items ...string) {
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		if _, ok := s.seen[it]; ok {
			continue
		}
		s.seen[it] = struct{}{}
		s.order = append(s.order, it)
	}
}

func (s *orderedSet) items() []string {
	return s.order
}
