package deviation

import "testing"

func TestValidateDuplicateIDs(t *testing.T) {
	dup := []Deviation{
		{ID: "DEV-001", Title: "a", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"x"}},
		{ID: "DEV-001", Title: "b", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"y"}},
	}
	result := Validate(dup)
	if result.IsValid() {
		t.Fatal("expected duplicate IDs to be invalid")
	}
}

func TestValidateMalformedID(t *testing.T) {
	bad := []Deviation{{ID: "XYZ-1", Title: "a", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"x"}}}
	result := Validate(bad)
	if result.IsValid() {
		t.Fatal("expected an ID not starting with DEV- to be invalid")
	}
}

func TestValidateSharedScenarioIsInvalid(t *testing.T) {
	clash := []Deviation{
		{ID: "DEV-001", Title: "a", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"shared"}},
		{ID: "DEV-002", Title: "b", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"shared"}},
	}
	result := Validate(clash)
	if result.IsValid() {
		t.Fatal("expected two deviations claiming the same scenario to be invalid")
	}
}

func TestValidateEmptyRequiredField(t *testing.T) {
	missing := []Deviation{{ID: "DEV-001", Title: "", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"x"}}}
	result := Validate(missing)
	if result.IsValid() {
		t.Fatal("expected an empty title to be invalid")
	}
}

func TestIsReleaseReadyRequiresZeroProposed(t *testing.T) {
	clean := []Deviation{{ID: "DEV-001", Title: "a", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"x"}, Status: Approved}}
	if !Validate(clean).IsReleaseReady() {
		t.Error("an all-approved registry should be release ready")
	}

	withProposed := append(clean, Deviation{ID: "DEV-002", Title: "b", Summary: "s", UserImpact: "u", Rationale: "r", LinkedScenarios: []string{"y"}, Status: Proposed})
	if Validate(withProposed).IsReleaseReady() {
		t.Error("a registry with a Proposed entry should not be release ready")
	}
}

func TestFindAndFindByScenario(t *testing.T) {
	d, ok := Find(Registry, "DEV-001")
	if !ok || d.ID != "DEV-001" {
		t.Fatalf("Find(DEV-001) = %#v, %v", d, ok)
	}
	d2, ok := FindByScenario(Registry, "turso-exec-last-insert-id")
	if !ok || d2.ID != "DEV-002" {
		t.Fatalf("FindByScenario = %#v, %v", d2, ok)
	}
}

func TestFilterByStatus(t *testing.T) {
	approved := FilterByStatus(Registry, Approved)
	if len(approved) != 1 {
		t.Errorf("got %d approved entries, want 1", len(approved))
	}
	proposed := FilterByStatus(Registry, Proposed)
	if len(proposed) != 1 {
		t.Errorf("got %d proposed entries, want 1", len(proposed))
	}
}
