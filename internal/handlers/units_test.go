package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/catalog"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/validation"
)

func testHandler() *UnitsHandler {
	return &UnitsHandler{Catalog: catalog.NewBuiltin()}
}

const baselineUnit = `{
	"chassis": "Testhammer",
	"tonnage": 50,
	"tech_base": "Inner Sphere",
	"walk_mp": 4,
	"engine": {"type": "Standard", "tech_base": "Inner Sphere"},
	"gyro": {"type": "Standard", "tech_base": "Inner Sphere"},
	"structure": {"type": "Standard", "tech_base": "Inner Sphere"},
	"armor": {"type": "Standard", "tech_base": "Inner Sphere", "tonnage": 0},
	"heat_sinks": {"type": "Single", "tech_base": "Inner Sphere"},
	"heat_sink_count": 10,
	"jump_jets": {"type": "Standard", "tech_base": "Inner Sphere"}
}`

func TestValidateEndpoint(t *testing.T) {
	body := `{"unit": ` + baselineUnit + `}`
	req := httptest.NewRequest("POST", "/api/units/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testHandler().Validate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var report validation.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Valid {
		t.Errorf("baseline unit invalid: %+v", report.Errors)
	}
}

func TestValidateEndpointBadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/units/validate", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	testHandler().Validate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCalculationsEndpoint(t *testing.T) {
	body := `{"unit": ` + baselineUnit + `}`
	req := httptest.NewRequest("POST", "/api/units/calculations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testHandler().Calculations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		EngineRating int `json:"engine_rating"`
		RunMP        int `json:"run_mp"`
		Slots        struct {
			Total     int `json:"total"`
			Available int `json:"available"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.EngineRating != 200 || resp.RunMP != 6 {
		t.Errorf("rating/run = %d/%d, want 200/6", resp.EngineRating, resp.RunMP)
	}
	if resp.Slots.Available != 78 {
		t.Errorf("available slots = %d, want 78", resp.Slots.Available)
	}
}

func TestCalculationsEndpointUnknownType(t *testing.T) {
	body := strings.Replace(`{"unit": `+baselineUnit+`}`, `"type": "Standard", "tech_base": "Inner Sphere"},
	"gyro"`, `"type": "Perpetual Motion", "tech_base": "Inner Sphere"},
	"gyro"`, 1)
	req := httptest.NewRequest("POST", "/api/units/calculations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testHandler().Calculations(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 with report, body %s", rec.Code, rec.Body.String())
	}
	var report validation.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Valid {
		t.Error("unknown engine type should come back as a blocking report")
	}
}

func TestSwitchTechEndpoint(t *testing.T) {
	body := `{
		"unit": ` + baselineUnit + `,
		"subsystem": "engine",
		"tech_base": "Clan",
		"memory": {}
	}`
	req := httptest.NewRequest("POST", "/api/units/switch-tech", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testHandler().SwitchTech(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Config struct {
			Engine struct {
				TechBase string `json:"tech_base"`
			} `json:"engine"`
		} `json:"config"`
		Resolution struct {
			Kind string `json:"kind"`
		} `json:"resolution"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Config.Engine.TechBase != string(construct.Clan) {
		t.Errorf("engine base = %q, want Clan", res.Config.Engine.TechBase)
	}
	if res.Resolution.Kind != "defaulted" {
		t.Errorf("resolution = %q, want defaulted with empty memory", res.Resolution.Kind)
	}
}

func TestSwitchTechEndpointUnknownSubsystem(t *testing.T) {
	body := `{"unit": ` + baselineUnit + `, "subsystem": "warp_drive", "tech_base": "Clan"}`
	req := httptest.NewRequest("POST", "/api/units/switch-tech", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testHandler().SwitchTech(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
