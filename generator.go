package pressflow

import (
	"fmt"
	"html"
	"strings"

	"github.com/eringen/pressflow/wordpress"
)

// styleVariant drives the templated content generator. Each writing style
// has its own title shape, intro, section plan, and closing paragraph.
type styleVariant struct {
	Key         string
	Label       string
	Description string

	titleFormat string
	seoSuffix   string
	intro       string
	sections    []contentSection
	outro       string
	extraTags   []string
}

type contentSection struct {
	heading string
	body    string
}

var styleVariants = []styleVariant{
	{
		Key:         "professional",
		Label:       "Professional",
		Description: "Polished, business-oriented tone",
		titleFormat: "%s: A Practical Overview",
		seoSuffix:   "Expert Insights",
		intro:       "In today's competitive landscape, %s deserves a closer look. This article breaks down what matters, why it matters, and how to act on it.",
		sections: []contentSection{
			{"Why %s Matters", "Organizations that understand %s consistently outperform those that treat it as an afterthought. The fundamentals are worth getting right before scaling any initiative."},
			{"Key Considerations", "Before investing in %s, weigh the costs, the timeline, and the skills your team already has. A small pilot usually reveals more than months of planning."},
			{"Putting It Into Practice", "Start with a narrow, measurable goal related to %s. Review the results, adjust, and only then widen the scope."},
		},
		outro:     "Approached deliberately, %s becomes a durable advantage rather than a passing experiment.",
		extraTags: []string{"business", "strategy"},
	},
	{
		Key:         "technical",
		Label:       "Technical",
		Description: "Precise, detail-first explanations",
		titleFormat: "Understanding %s: A Technical Deep Dive",
		seoSuffix:   "Technical Guide",
		intro:       "This article examines %s from first principles: how it works, where it breaks, and what the trade-offs look like in practice.",
		sections: []contentSection{
			{"How %s Works", "At its core, %s is a composition of well-understood parts. Understanding each part in isolation makes the whole system far easier to reason about."},
			{"Common Pitfalls", "Most failures around %s come from unstated assumptions. Document the invariants early and test against them."},
			{"Performance and Trade-offs", "Every approach to %s trades something away. Measure before optimizing, and prefer the boring solution until the numbers say otherwise."},
		},
		outro:     "A disciplined, measured approach to %s pays for itself the first time something goes wrong.",
		extraTags: []string{"engineering", "deep-dive"},
	},
	{
		Key:         "casual",
		Label:       "Casual",
		Description: "Friendly, conversational voice",
		titleFormat: "Let's Talk About %s",
		seoSuffix:   "A Friendly Guide",
		intro:       "So you've been hearing about %s and wondering what the fuss is about. Good news: it's less complicated than it sounds.",
		sections: []contentSection{
			{"The Basics of %s", "Here's the thing about %s: once you strip away the jargon, the core idea is pretty simple. Let's walk through it together."},
			{"What People Get Wrong", "A lot of advice about %s is either outdated or overcomplicated. You can safely ignore most of it and focus on what actually moves the needle."},
			{"Where to Start", "Don't overthink %s. Pick one small thing to try this week and see how it goes."},
		},
		outro:     "That's really all there is to %s. Give it a shot and see what works for you.",
		extraTags: []string{"tips"},
	},
	{
		Key:         "academic",
		Label:       "Academic",
		Description: "Structured, citation-ready prose",
		titleFormat: "An Examination of %s",
		seoSuffix:   "A Structured Analysis",
		intro:       "The subject of %s has attracted considerable attention in recent years. This analysis surveys the principal perspectives and evaluates their practical implications.",
		sections: []contentSection{
			{"Background and Context", "Any serious treatment of %s must begin with its origins and the conditions under which it emerged. The historical context shapes how the subject is understood today."},
			{"Current Perspectives on %s", "Contemporary views of %s fall into several broad schools of thought, each with distinct assumptions and predicted outcomes."},
			{"Implications and Further Questions", "The evidence surrounding %s suggests several avenues for further inquiry, particularly where existing frameworks fail to explain observed results."},
		},
		outro:     "While open questions remain, the study of %s offers a productive lens for both researchers and practitioners.",
		extraTags: []string{"analysis", "research"},
	},
	{
		Key:         "persuasive",
		Label:       "Persuasive",
		Description: "Argument-driven, action-oriented",
		titleFormat: "Why You Can't Afford to Ignore %s",
		seoSuffix:   "The Case For Action",
		intro:       "Every week you delay engaging with %s, the gap widens between you and those who started yesterday. Here's why now is the moment.",
		sections: []contentSection{
			{"The Cost of Waiting on %s", "Inaction around %s has a price, and it compounds. The earliest movers capture advantages that become very hard to claw back later."},
			{"What the Skeptics Miss", "Critics of %s tend to argue against a strawman version of it. The real practice looks nothing like the caricature."},
			{"Your First Step", "Committing to %s doesn't require a grand plan. It requires one decision, made today, and followed through this week."},
		},
		outro:     "The case for %s is clear. The only remaining question is whether you act on it.",
		extraTags: []string{"opinion"},
	},
	{
		Key:         "plain",
		Label:       "Plain",
		Description: "Short sentences, no flourish",
		titleFormat: "%s, Explained Simply",
		seoSuffix:   "Plain English",
		intro:       "This is a short, plain explanation of %s. No jargon, no filler.",
		sections: []contentSection{
			{"What %s Is", "%s is simpler than most explanations make it. Here is the short version."},
			{"What To Do About %s", "Three things matter with %s. Know your goal. Start small. Check your results."},
		},
		outro:     "That is %s in plain terms. The rest is practice.",
		extraTags: nil,
	},
}

// Styles returns the writing styles offered in the topic form, in display order.
func Styles() []StyleOption {
	opts := make([]StyleOption, len(styleVariants))
	for i, v := range styleVariants {
		opts[i] = StyleOption{Key: v.Key, Label: v.Label, Description: v.Description}
	}
	return opts
}

func styleByKey(key string) (styleVariant, bool) {
	for _, v := range styleVariants {
		if v.Key == key {
			return v, true
		}
	}
	return styleVariant{}, false
}

// Generate produces a templated post for topic in the given writing style.
// Feedback from a previous preview adjusts the output: "shorter" drops a
// section, "longer" repeats the section plan, "fewer tags" trims the tag list.
func Generate(topic, style, feedback string) (wordpress.GeneratedPost, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return wordpress.GeneratedPost{}, fmt.Errorf("generate: topic is required")
	}
	variant, ok := styleByKey(style)
	if !ok {
		return wordpress.GeneratedPost{}, fmt.Errorf("generate: unknown writing style %q", style)
	}

	fb := strings.ToLower(feedback)
	sections := variant.sections
	if strings.Contains(fb, "shorter") && len(sections) > 1 {
		sections = sections[:len(sections)-1]
	} else if strings.Contains(fb, "longer") {
		sections = append(append([]contentSection{}, sections...), contentSection{
			"Going Further with %s",
			"Once the basics of %s are in place, the next gains come from consistency. Revisit your results on a schedule and refine as you learn.",
		})
	}

	display := titleCase(topic)
	title := fmt.Sprintf(variant.titleFormat, display)
	excerpt := fmt.Sprintf("A look at %s: what it is, why it matters, and how to get started.", topic)

	var content strings.Builder
	content.WriteString("<p>" + html.EscapeString(fill(variant.intro, topic)) + "</p>\n")
	for _, sec := range sections {
		content.WriteString("<h2>" + html.EscapeString(fill(sec.heading, display)) + "</h2>\n")
		content.WriteString("<p>" + html.EscapeString(fill(sec.body, topic)) + "</p>\n")
	}
	content.WriteString("<p>" + html.EscapeString(fill(variant.outro, topic)) + "</p>\n")

	tags := deriveTags(topic, variant.extraTags)
	if strings.Contains(fb, "fewer tags") && len(tags) > 2 {
		tags = tags[:2]
	}

	keyphrase := strings.ToLower(topic)
	return wordpress.GeneratedPost{
		Title:           title,
		Content:         content.String(),
		Excerpt:         excerpt,
		SEOTitle:        title + " | " + variant.seoSuffix,
		MetaDescription: excerpt,
		Tags:            tags,
		ImageURL:        fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", Slugify(topic)),
		FocusKeyphrase:  keyphrase,
	}, nil
}

// fill substitutes the topic into a template. Some headings carry no
// placeholder at all.
func fill(tmpl, topic string) string {
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, topic)
	}
	return tmpl
}

// deriveTags picks the significant topic words plus the style's own tags,
// capped at five.
func deriveTags(topic string, extra []string) []string {
	seen := make(map[string]struct{})
	var tags []string
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	for _, w := range strings.Fields(topic) {
		if len(w) > 3 {
			add(w)
		}
	}
	for _, t := range extra {
		add(t)
	}
	if len(tags) > 5 {
		tags = tags[:5]
	}
	return tags
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
