package mockcrm

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// timeAnchor pins all generated timestamps. Anything derived from the clock
// would break the same-seed-same-dataset guarantee.
var timeAnchor = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// dataset is the whole record store of one mock server, generated up front
// so pagination stays stable across requests.
type dataset struct {
	records map[string][]map[string]interface{}
}

func buildDataset(seed int64, count int) *dataset {
	f := gofakeit.New(seed)
	d := &dataset{records: map[string][]map[string]interface{}{}}
	for i := 1; i <= count; i++ {
		d.records["deals"] = append(d.records["deals"], makeDeal(f, i))
	}
	for i := 1; i <= count; i++ {
		d.records["persons"] = append(d.records["persons"], makePerson(f, i))
	}
	for i := 1; i <= count; i++ {
		d.records["organizations"] = append(d.records["organizations"], makeOrganization(f, i))
	}
	for i := 1; i <= count; i++ {
		d.records["activities"] = append(d.records["activities"], makeActivity(f, i))
	}
	for i := 1; i <= count; i++ {
		d.records["leads"] = append(d.records["leads"], makeLead(f, i))
	}
	return d
}

func makeDeal(f *gofakeit.Faker, id int) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"title":       f.Company() + " deal",
		"value":       f.Number(500, 90000),
		"currency":    f.RandomString(currencies),
		"status":      f.RandomString(dealStatuses),
		"label":       codeList(f, len(labelColors), 2),
		"org_id":      map[string]interface{}{"name": f.Company(), "value": f.Number(1, 400)},
		"person_id":   map[string]interface{}{"name": f.Name(), "value": f.Number(1, 900)},
		"add_time":    stamp(f),
		"update_time": stamp(f),
		"custom_fields": map[string]interface{}{
			dealStageKey:  oneCode(f, len(dealStages)),
			dealSourceKey: oneCode(f, len(dealSources)),
		},
		"_meta": map[string]interface{}{"revision": f.Number(1, 9)},
	}
}

func makePerson(f *gofakeit.Faker, id int) map[string]interface{} {
	first := f.FirstName()
	last := f.LastName()
	return map[string]interface{}{
		"id":               id,
		"name":             first + " " + last,
		"first_name":       first,
		"last_name":        last,
		"org_id":           map[string]interface{}{"name": f.Company(), "value": f.Number(1, 400)},
		"emails":           contactSet(f, emailLabels, func() string { return f.Email() }),
		"phones":           contactSet(f, phoneLabels, func() string { return f.Phone() }),
		"label":            oneCode(f, len(labelColors)),
		"open_deals_count": f.Number(0, 8),
		"add_time":         stamp(f),
		"custom_fields": map[string]interface{}{
			personDeptKey: oneCode(f, len(departments)),
		},
	}
}

func makeOrganization(f *gofakeit.Faker, id int) map[string]interface{} {
	return map[string]interface{}{
		"id":           id,
		"name":         f.Company(),
		"address":      fmt.Sprintf("%s, %s", f.Street(), f.City()),
		"people_count": f.Number(1, 50),
		"owner_id":     map[string]interface{}{"name": f.Name(), "value": f.Number(1, 20)},
		"label":        oneCode(f, len(labelColors)),
		"add_time":     stamp(f),
	}
}

func makeActivity(f *gofakeit.Faker, id int) map[string]interface{} {
	return map[string]interface{}{
		"id":       id,
		"subject":  strings.TrimSuffix(f.Sentence(4), "."),
		"type":     f.RandomString(activityKinds),
		"done":     f.Bool(),
		"due_date": f.DateRange(timeAnchor, timeAnchor.AddDate(0, 3, 0)).Format("2006-01-02"),
		"org_id":   map[string]interface{}{"name": f.Company(), "value": f.Number(1, 400)},
		"add_time": stamp(f),
	}
}

func makeLead(f *gofakeit.Faker, id int) map[string]interface{} {
	return map[string]interface{}{
		"id":       f.UUID(),
		"title":    f.Company() + " lead",
		"owner_id": map[string]interface{}{"name": f.Name(), "value": f.Number(1, 20)},
		"value":    map[string]interface{}{"value": f.Number(500, 20000), "currency": f.RandomString(currencies)},
		"was_seen": f.Bool(),
		"add_time": stamp(f),
	}
}

// contactSet builds the email/phone array shape: one to three entries, each
// with label, value and primary, the first entry being the primary one.
func contactSet(f *gofakeit.Faker, labels []string, value func() string) []map[string]interface{} {
	n := f.Number(1, len(labels))
	set := make([]map[string]interface{}, n)
	for i := 0; i < n; i++ {
		set[i] = map[string]interface{}{
			"label":   labels[i],
			"value":   value(),
			"primary": i == 0,
		}
	}
	return set
}

// codeList picks 1..maxPick distinct option codes and joins them with commas.
func codeList(f *gofakeit.Faker, optionCount, maxPick int) string {
	n := f.Number(1, maxPick)
	seen := map[int]bool{}
	var codes []string
	for len(codes) < n {
		c := f.Number(1, optionCount)
		if seen[c] {
			continue
		}
		seen[c] = true
		codes = append(codes, strconv.Itoa(c))
	}
	return strings.Join(codes, ",")
}

func oneCode(f *gofakeit.Faker, optionCount int) string {
	return strconv.Itoa(f.Number(1, optionCount))
}

func stamp(f *gofakeit.Faker) string {
	return f.DateRange(timeAnchor.AddDate(0, -6, 0), timeAnchor).Format("2006-01-02 15:04:05")
}
