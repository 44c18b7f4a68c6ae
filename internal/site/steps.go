// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Launch is the epoch the growing statistics are measured from.
var Launch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	baseDoctors     = 20000
	doctorsPerDay   = 15
	baseHoursSaved  = 40000
	hoursPerDay     = 80
	baseReviewCount = 10000
)

// Stats are the homepage figures derived from the elapsed days since Launch.
type Stats struct {
	Days       int
	Doctors    int
	HoursSaved int
}

// StatsAt computes the homepage figures for now. Times before Launch count
// as day zero.
func StatsAt(now time.Time) Stats {
	days := int(now.Sub(Launch) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return Stats{
		Days:       days,
		Doctors:    baseDoctors + days*doctorsPerDay,
		HoursSaved: baseHoursSaved + days*hoursPerDay,
	}
}

// ReviewCount is the aggregate review count shown in the schema markup.
func (s Stats) ReviewCount() int {
	return baseReviewCount + s.Doctors*3/10
}

var printer = message.NewPrinter(language.English)

// groupDigits formats n with en-US thousands separators.
func groupDigits(n int) string {
	return printer.Sprintf("%d", n)
}

var (
	doctorsRe = regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+)\+ (doctors|clinicians)\b`)
	hoursRe   = regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+)\+ hours\b`)
	schemaRe  = regexp.MustCompile(`"(datePublished|dateModified)"\s*:\s*"\d{4}-\d{2}-\d{2}"`)
	reviewRe  = regexp.MustCompile(`"reviewCount"\s*:\s*"\d+"`)
)

// grouped parses a comma-grouped figure such as "20,000".
func grouped(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// replaceFigures rewrites the matches of re whose figure is at least floor.
// Figures only grow from their launch value, so smaller ones belong to
// unrelated copy.
func replaceFigures(doc string, re *regexp.Regexp, floor int, value string) string {
	return re.ReplaceAllStringFunc(doc, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if grouped(sub[1]) < floor {
			return m
		}
		return value + m[len(sub[1]):]
	})
}

// UpdateStats rewrites the "N+ doctors", "N+ clinicians" and "N+ hours"
// figures with the values for now. Only figures at or above the launch
// values are touched.
func UpdateStats(doc string, now time.Time) string {
	s := StatsAt(now)
	doc = replaceFigures(doc, doctorsRe, baseDoctors, groupDigits(s.Doctors))
	return replaceFigures(doc, hoursRe, baseHoursSaved, groupDigits(s.HoursSaved))
}

// UpdateSchemaDates sets every datePublished and dateModified field to
// now's UTC date.
func UpdateSchemaDates(doc string, now time.Time) string {
	today := now.UTC().Format("2006-01-02")
	return schemaRe.ReplaceAllString(doc, `"${1}":"`+today+`"`)
}

// UpdateReviewCount recomputes the schema review count from the doctor
// figure for now.
func UpdateReviewCount(doc string, now time.Time) string {
	return reviewRe.ReplaceAllLiteralString(doc, fmt.Sprintf(`"reviewCount":"%d"`, StatsAt(now).ReviewCount()))
}

// trendingTopic is a seasonal FAQ topic starting in a given month.
type trendingTopic struct {
	month time.Month
	topic string
}

var trendingTopics = []trendingTopic{
	{time.January, "New Year EHR migrations"},
	{time.April, "Q2 budget planning"},
	{time.July, "Mid-year workflow optimization"},
	{time.October, "Year-end documentation prep"},
}

// TrendingTopic returns the seasonal topic in effect for now.
func TrendingTopic(now time.Time) string {
	current := trendingTopics[0].topic
	for _, t := range trendingTopics {
		if t.month <= now.Month() {
			current = t.topic
		}
	}
	return current
}

// faqAnchor marks the end of the homepage FAQ section.
const faqAnchor = "</div>\n    </div>\n\n    <!-- COMPARISON PAGE -->"

// AddTrendingFAQ returns a step that inserts a seasonal FAQ item before
// the FAQ section's closing anchor. The step no-ops when the topic is
// already present or the anchor is missing.
func AddTrendingFAQ(brand string) StepFunc {
	return func(doc string, now time.Time) string {
		topic := TrendingTopic(now)
		if strings.Contains(doc, topic) || !strings.Contains(doc, faqAnchor) {
			return doc
		}
		item := fmt.Sprintf(`
      <div class="faq-item" onclick="toggleFAQ(this)">
        <div class="faq-question">How does %[1]s help with %[2]s?</div>
        <div class="faq-answer">
          <p><strong>%[1]s streamlines %[2]s.</strong> Our automated documentation saves crucial time during busy transition periods, allowing you to focus on patient care while maintaining compliance and accuracy.</p>
        </div>
      </div>`, brand, topic)
		return strings.Replace(doc, faqAnchor, item+"\n"+faqAnchor, 1)
	}
}

// Testimonial is one rotating quote on the homepage.
type Testimonial struct {
	Name      string
	Specialty string
	Quote     string
}

// Testimonials is the rotation, one per week.
var Testimonials = []Testimonial{
	{
		Name:      "Dr. Sarah Chen",
		Specialty: "Internal Medicine",
		Quote:     "I was spending $3,500/month on a human scribe who was only available during clinic hours. Freed costs $99/month, works for all my visits including hospital rounds, and the notes are actually more detailed. It's a no-brainer.",
	},
	{
		Name:      "Dr. James Williams",
		Specialty: "Emergency Medicine",
		Quote:     "In the ER, every second counts. Freed captures everything while I focus on critical care. Notes are ready before the patient is discharged. This has revolutionized our workflow.",
	},
	{
		Name:      "Dr. Maria Garcia",
		Specialty: "Pediatrics",
		Quote:     "Parents appreciate that I'm looking at their child, not a computer. Freed captures developmental milestones, vaccine discussions, everything. My documentation has never been better.",
	},
	{
		Name:      "Dr. Robert Kim",
		Specialty: "Psychiatry",
		Quote:     "Mental health visits require deep listening. Freed lets me maintain eye contact and build rapport while ensuring comprehensive documentation. The mental status exam formatting is perfect.",
	},
}

// testimonialRe matches a quoted testimonial attributed to a doctor in any
// "... Medicine" specialty or in one of the rotation's specialties.
var testimonialRe = func() *regexp.Regexp {
	alts := []string{`\w+ Medicine`}
	for _, t := range Testimonials {
		alts = append(alts, regexp.QuoteMeta(t.Specialty))
	}
	return regexp.MustCompile(`<em>".*?"</em> - Dr\. \w+ \w+, (?:` + strings.Join(alts, "|") + `)`)
}()

const week = 7 * 24 * time.Hour

// TestimonialAt returns the testimonial for the Unix week containing now.
func TestimonialAt(now time.Time) Testimonial {
	ms, wk := now.UnixMilli(), week.Milliseconds()
	weekNum := ms / wk
	if ms%wk < 0 {
		weekNum--
	}
	n := int64(len(Testimonials))
	return Testimonials[int((weekNum%n+n)%n)]
}

// RotateTestimonial replaces every testimonial block with this week's.
func RotateTestimonial(doc string, now time.Time) string {
	t := TestimonialAt(now)
	block := fmt.Sprintf(`<em>"%s"</em> - %s, %s`, t.Quote, t.Name, t.Specialty)
	return testimonialRe.ReplaceAllLiteralString(doc, block)
}

// UpdateMetaDescription returns a step that stamps the homepage meta
// description with the current month, replacing any earlier stamp.
func UpdateMetaDescription(brand string) StepFunc {
	prefix := brand + " medical scribe saves doctors 2+ hours daily"
	re := regexp.MustCompile(`content="` + regexp.QuoteMeta(prefix) + `(?: \(Updated [A-Za-z]+ \d{4}\))?`)
	return func(doc string, now time.Time) string {
		stamp := `content="` + prefix + " (Updated " + now.Format("January 2006") + ")"
		return re.ReplaceAllLiteralString(doc, stamp)
	}
}
