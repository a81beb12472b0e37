package workflow

import (
	"regexp"
	"sort"
	"strings"
)

const (
	LanguageJavaScript = "javascript"
	LanguagePython     = "python"
)

// Complexity is a coarse size/shape tier of a code node.
type Complexity string

const (
	ComplexitySimple   Complexity = "Simple"
	ComplexityModerate Complexity = "Moderate"
	ComplexityComplex  Complexity = "Complex"
)

// CodeConfig is the normalized configuration of a script node.
type CodeConfig struct {
	StepRef
	Language      string     `json:"language"`
	Source        *string    `json:"source"`
	FunctionNames []string   `json:"functionNames"`
	LineCount     int        `json:"lineCount"`
	Score         int        `json:"complexityScore"`
	Complexity    Complexity `json:"complexity"`
}

type codeField struct {
	key      string
	language string
}

var (
	jsFields = []codeField{
		{"jsCode", LanguageJavaScript},
		{"functionCode", LanguageJavaScript},
		{"code", LanguageJavaScript},
	}
	pythonFields = []codeField{
		{"pythonCode", LanguagePython},
	}
)

var (
	declPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bfunction\s*\*?\s+([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=`),
		regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`),
	}

	asyncPattern       = regexp.MustCompile(`\basync\b|\bawait\b|\bPromise\b|\basyncio\b`)
	loopPattern        = regexp.MustCompile(`\bfor\b|\bwhile\b|\.forEach\(|\.map\(|\.reduce\(`)
	conditionalPattern = regexp.MustCompile(`\bif\b|\bswitch\b|\belif\b`)
	regexPattern       = regexp.MustCompile(`\bnew RegExp\(|\bre\.(?:compile|match|search|sub|findall)\(|\.(?:test|match|replace)\(\s*/`)
)

// ExtractCode resolves the source of a code node, infers its language, harvests declared
// names and rates its complexity.
func ExtractCode(node Node) CodeConfig {
	params := node.Parameters
	fields := append(append([]codeField(nil), jsFields...), pythonFields...)
	if lang, _ := params["language"].(string); strings.HasPrefix(strings.ToLower(lang), "python") {
		fields = append(append([]codeField(nil), pythonFields...), jsFields...)
	}

	cfg := CodeConfig{
		Language:      LanguageJavaScript,
		FunctionNames: []string{},
		Complexity:    ComplexitySimple,
	}
	for _, f := range fields {
		src, ok := params[f.key].(string)
		if !ok || strings.TrimSpace(src) == "" {
			continue
		}
		cfg.Language = f.language
		cfg.Source = &src
		break
	}
	if cfg.Source == nil {
		return cfg
	}

	cfg.FunctionNames = FunctionNames(*cfg.Source)
	cfg.LineCount = countLines(*cfg.Source)
	cfg.Score, cfg.Complexity = RateComplexity(*cfg.Source, len(cfg.FunctionNames))
	return cfg
}

// FunctionNames returns declared function and variable names in order of first appearance.
func FunctionNames(source string) []string {
	type hit struct {
		pos  int
		name string
	}
	var hits []hit
	for _, re := range declPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(source, -1) {
			hits = append(hits, hit{pos: m[2], name: source[m[2]:m[3]]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	names := []string{}
	seen := map[string]struct{}{}
	for _, h := range hits {
		if _, ok := seen[h.name]; ok {
			continue
		}
		seen[h.name] = struct{}{}
		names = append(names, h.name)
	}
	return names
}

// RateComplexity scores source by size, declaration count and the presence of async, loop,
// conditional and regular expression constructs. Scores up to 2 are Simple, up to 5 Moderate.
func RateComplexity(source string, functionCount int) (int, Complexity) {
	score := 0
	switch lines := countLines(source); {
	case lines > 50:
		score += 3
	case lines > 20:
		score += 2
	case lines > 10:
		score++
	}
	switch {
	case functionCount > 3:
		score += 2
	case functionCount > 0:
		score++
	}
	for _, re := range []*regexp.Regexp{asyncPattern, loopPattern, conditionalPattern, regexPattern} {
		if re.MatchString(source) {
			score++
		}
	}

	switch {
	case score <= 2:
		return score, ComplexitySimple
	case score <= 5:
		return score, ComplexityModerate
	default:
		return score, ComplexityComplex
	}
}

func countLines(source string) int {
	trimmed := strings.TrimRight(source, "\n")
	if strings.TrimSpace(trimmed) == "" {
		return 0
	}
	return strings.Count(trimmed, "\n") + 1
}
