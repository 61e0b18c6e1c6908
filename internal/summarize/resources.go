package summarize

import (
	"strings"
	"sync"
)

// englishStopwords is the inventory of English stopwords excluded from
// keyword extraction. It mirrors the standard corpus list used by most NLP
// toolkits; contraction fragments (s, t, ll, ...) survive punctuation
// stripping, so they are listed bare as well.
const englishStopwords = `i me my myself we our ours ourselves you your yours
yourself yourselves he him his himself she her hers herself it its itself
they them their theirs themselves what which who whom this that these those
am is are was were be been being have has had having do does did doing
a an the and but if or because as until while of at by for with about
against between into through during before after above below to from up
down in out on off over under again further then once here there when where
why how all any both each few more most other some such no nor not only own
same so than too very s t can will just don dont should shouldve now d ll m
o re ve y ain aren arent couldn couldnt didn didnt doesn doesnt hadn hadnt
hasn hasnt haven havent isn isnt ma mightn mightnt mustn mustnt needn neednt
shan shant shouldn shouldnt wasn wasnt weren werent won wont wouldn wouldnt`

// abbreviationWords lists tokens whose trailing period does not end a
// sentence. Matched case-insensitively against the word preceding a period.
const abbreviationWords = `mr mrs ms dr prof rev gen sen rep gov inc corp ltd
co vs etc jr sr st no dept est approx fig al u.s u.k u.n e.g i.e a.m p.m
jan feb mar apr jun jul aug sep sept oct nov dec`

// stopwordSet returns the shared stopword set, built exactly once per
// process on first use and never mutated afterwards.
var stopwordSet = sync.OnceValue(func() map[string]struct{} {
	return fieldsToSet(englishStopwords)
})

// abbreviationSet returns the shared sentence-splitter abbreviation set,
// built exactly once per process on first use.
var abbreviationSet = sync.OnceValue(func() map[string]struct{} {
	return fieldsToSet(abbreviationWords)
})

func fieldsToSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}
