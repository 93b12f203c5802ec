package mockcrm

// Custom field keys are 40-char hashes, the way CRM backends mint them.
const (
	dealStageKey  = "4f9d2c81a7e35b60f18c4a2d9e7b3f50c6a1d8e2"
	dealSourceKey = "b2e7a94c1f8d3065e2c9b47a0d6f18e3c5a7b9d1"
	personDeptKey = "7c3e9f1b5a8d2460c7e1f9a3b5d7c90e2f4a6b8d"
)

var (
	labelColors   = []string{"Red", "Blue", "Green", "Yellow", "Purple", "Gray"}
	dealStages    = []string{"Qualified", "Contact Made", "Demo Scheduled", "Proposal Made", "Negotiations Started"}
	dealSources   = []string{"Inbound", "Outbound", "Referral", "Event"}
	dealStatuses  = []string{"open", "won", "lost"}
	departments   = []string{"Sales", "Marketing", "Engineering", "Support", "Finance"}
	activityKinds = []string{"call", "meeting", "task", "deadline", "email", "lunch"}
	currencies    = []string{"EUR", "USD", "GBP", "SEK"}
	emailLabels   = []string{"work", "home", "other"}
	phoneLabels   = []string{"work", "mobile", "home"}
)

// savedFilters simulate server-side filters: filter N keeps every record
// whose id divides by N. The names say so.
var savedFilters = []map[string]interface{}{
	{"id": 2, "name": "Even ids", "kind": "deals"},
	{"id": 3, "name": "Every third", "kind": "persons"},
	{"id": 5, "name": "Every fifth", "kind": "deals"},
}

func field(key, name string) map[string]interface{} {
	return map[string]interface{}{"key": key, "name": name}
}

// fieldWithOptions numbers the option codes from 1, in label order. Option
// ids go out as numbers, like the real wire format.
func fieldWithOptions(key, name string, labels []string) map[string]interface{} {
	options := make([]map[string]interface{}, len(labels))
	for i, label := range labels {
		options[i] = map[string]interface{}{"id": i + 1, "label": label}
	}
	return map[string]interface{}{"key": key, "name": name, "options": options}
}

func standardFieldCatalog(kind string) []map[string]interface{} {
	catalog := []map[string]interface{}{
		field("id", "ID"),
		field("add_time", "Created"),
		field("update_time", "Updated"),
		fieldWithOptions("label", "Label", labelColors),
	}
	switch kind {
	case "deals":
		catalog = append(catalog,
			field("title", "Title"),
			field("value", "Value"),
			field("currency", "Currency"),
			field("status", "Status"),
			field("org_id", "Organization"),
			field("person_id", "Contact Person"),
		)
	case "persons":
		catalog = append(catalog,
			field("name", "Name"),
			field("emails", "Emails"),
			field("phones", "Phones"),
			field("org_id", "Organization"),
		)
	case "organizations":
		catalog = append(catalog,
			field("name", "Name"),
			field("address", "Address"),
			field("people_count", "People"),
			field("owner_id", "Owner"),
		)
	case "activities":
		catalog = append(catalog,
			field("subject", "Subject"),
			field("type", "Type"),
			field("done", "Done"),
			field("due_date", "Due Date"),
		)
	case "leads":
		catalog = append(catalog,
			field("title", "Title"),
			field("owner_id", "Owner"),
			field("was_seen", "Seen"),
		)
	}
	return catalog
}

func customFieldCatalog(kind string) []map[string]interface{} {
	switch kind {
	case "deals":
		return []map[string]interface{}{
			fieldWithOptions(dealStageKey, "Stage", dealStages),
			fieldWithOptions(dealSourceKey, "Source", dealSources),
		}
	case "persons":
		return []map[string]interface{}{
			fieldWithOptions(personDeptKey, "Department", departments),
		}
	}
	return nil
}
