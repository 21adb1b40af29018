// Package interpret turns free-text burial search queries, in English,
// Filipino or a mix of both, into structured search contexts.
//
// Interpretation runs in stages. The query is folded (accents and
// punctuation variants unified) and stripped of conversational prefixes
// and filler words. An ordered cascade of name matchers runs next, and the
// first plausible name wins. When none fires, a residual pass deletes every
// recognizable keyword and reads what is left as a name. Independent
// extractors then pull out dates, ages, plot numbers, plot types,
// cemeteries, locations and relationships. Finally the context is
// assembled: names are expanded through the nickname table, phonetic
// codes are computed, birth years are inferred from ages and the intent is
// classified.
//
// Interpretation never fails. Input that cannot be read yields a context
// with only the raw query and intent general.
package interpret
