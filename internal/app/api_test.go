package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"worldacross/internal/adapters/observability"
	"worldacross/internal/adapters/token"
	"worldacross/internal/app"
	"worldacross/internal/catalog"
	"worldacross/internal/domain"
	"worldacross/internal/storage/memory"
)

func newAPI(t *testing.T, latency time.Duration) *app.API {
	t.Helper()
	store, err := memory.NewSeeded()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	q := app.NewQueryService(store, nil, 0)
	return app.NewAPI(q, store, app.Options{
		Latency: latency,
		Tokens:  token.NewMaker("test-secret", time.Hour),
		Now:     func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	})
}

// data decodes an envelope back into its inner "data" object.
func data(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var outer map[string]map[string]any
	if err := json.Unmarshal(b, &outer); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	inner, ok := outer["data"]
	if !ok || len(outer) != 1 {
		t.Fatalf("want a single data key, got %s", b)
	}
	return inner
}

func TestEnvelope_Shape(t *testing.T) {
	a := newAPI(t, 0)
	env, err := a.Destinations.GetAll(context.Background(), catalog.Defaults())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	d := data(t, env)
	if d["success"] != true {
		t.Fatalf("success = %v", d["success"])
	}
	if msg, _ := d["message"].(string); msg == "" {
		t.Fatal("empty message")
	}
	list, ok := d["destinations"].([]any)
	if !ok || len(list) != 6 {
		t.Fatalf("destinations = %#v", d["destinations"])
	}
}

func TestDestinations_GetAllTwiceIsStable(t *testing.T) {
	a := newAPI(t, 0)
	ctx := context.Background()
	first, err := a.Destinations.GetAll(ctx, catalog.Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Destinations.GetAll(ctx, catalog.Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Payload) != 6 || !reflect.DeepEqual(first.Payload, second.Payload) {
		t.Fatalf("results differ or wrong size: %d vs %d", len(first.Payload), len(second.Payload))
	}
}

func TestDestinations_Filtered(t *testing.T) {
	a := newAPI(t, 0)
	env, err := a.Destinations.GetAll(context.Background(), catalog.Criteria{Category: "Beach", Type: domain.TypeDomestic})
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range env.Payload {
		if d.Name == "Dubai" {
			t.Fatalf("Dubai should not match Beach/Domestic: %+v", env.Payload)
		}
	}
	if len(env.Payload) == 0 || env.Payload[0].Name != "Goa" {
		t.Fatalf("want Goa first, got %+v", env.Payload)
	}
}

func TestGetByID_UnknownIsSuccessWithNull(t *testing.T) {
	a := newAPI(t, 0)
	ctx := context.Background()

	env, err := a.Packages.GetByID(ctx, 999)
	if err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	d := data(t, env)
	if d["success"] != true {
		t.Fatalf("success = %v", d["success"])
	}
	v, present := d["package"]
	if !present || v != nil {
		t.Fatalf("want package: null, got %#v (present=%v)", v, present)
	}

	if env, err := a.Destinations.GetByID(ctx, 999); err != nil || env.Payload != nil {
		t.Fatalf("destination miss: %v %+v", err, env.Payload)
	}
	if env, err := a.Memberships.GetByID(ctx, 999); err != nil || env.Payload != nil {
		t.Fatalf("membership miss: %v %+v", err, env.Payload)
	}
}

func TestGetByID_Found(t *testing.T) {
	a := newAPI(t, 0)
	env, err := a.Packages.GetByID(context.Background(), 5)
	if err != nil || env.Payload == nil {
		t.Fatalf("unexpected: %v %+v", err, env.Payload)
	}
	if env.Payload.Title != "Bali Honeymoon Special" || env.Payload.Rating.Count != 189 {
		t.Fatalf("unexpected package: %+v", env.Payload)
	}
}

func TestPackages_QueryOptions(t *testing.T) {
	a := newAPI(t, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		q    app.PackageQuery
		want []int64
	}{
		{"all", app.PackageQuery{}, []int64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"featured", app.PackageQuery{Featured: true}, []int64{1, 2, 4, 5}},
		{"featured+limit", app.PackageQuery{Featured: true, Limit: 2}, []int64{1, 2}},
		{"category", app.PackageQuery{Criteria: catalog.Criteria{Category: "luxury"}}, []int64{4, 6}},
		{"limit above size", app.PackageQuery{Limit: 50}, []int64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"no match", app.PackageQuery{Criteria: catalog.Criteria{Category: "Cruise"}}, []int64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, err := a.Packages.GetAll(ctx, tc.q)
			if err != nil {
				t.Fatal(err)
			}
			got := make([]int64, 0, len(env.Payload))
			for _, p := range env.Payload {
				got = append(got, p.ID)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPackages_Search(t *testing.T) {
	a := newAPI(t, 0)
	env, err := a.Packages.Search(context.Background(), "DUBAI")
	if err != nil {
		t.Fatal(err)
	}
	if len(env.Payload) != 2 || env.Payload[0].ID != 4 || env.Payload[1].ID != 8 {
		t.Fatalf("unexpected search result: %+v", env.Payload)
	}

	all, _ := a.Packages.Search(context.Background(), "")
	if len(all.Payload) != 8 {
		t.Fatalf("empty query should return everything, got %d", len(all.Payload))
	}
}

func TestMemberships_ByTenure(t *testing.T) {
	a := newAPI(t, 0)
	env, err := a.Memberships.GetAll(context.Background(), catalog.Criteria{Category: "5 Years"})
	if err != nil {
		t.Fatal(err)
	}
	if len(env.Payload) != 1 || env.Payload[0].Name != "Gold" {
		t.Fatalf("unexpected: %+v", env.Payload)
	}
}

func TestAuth_LoginVariants(t *testing.T) {
	a := newAPI(t, 0)
	ctx := context.Background()

	prem, err := a.Auth.Login(ctx, app.Credentials{Email: "Premium@WorldAcross.com", Password: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if prem.Payload.Membership.Plan != "Platinum" {
		t.Fatalf("premium login got %+v", prem.Payload)
	}
	if tok, _ := prem.Extra["token"].(string); tok == "" {
		t.Fatal("login returned no token")
	}

	std, err := a.Auth.Login(ctx, app.Credentials{Email: "someone@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if std.Payload.Email != "someone@example.com" || std.Payload.Membership.Plan == "Platinum" {
		t.Fatalf("standard login got %+v", std.Payload)
	}

	d := data(t, std)
	if _, ok := d["user"].(map[string]any); !ok {
		t.Fatalf("want user object, got %#v", d["user"])
	}
	if _, ok := d["token"].(string); !ok {
		t.Fatalf("want token next to user, got %#v", d)
	}
}

func TestAuth_RegisterThenProfile(t *testing.T) {
	a := newAPI(t, 0)
	ctx := context.Background()

	reg, err := a.Auth.Register(ctx, app.Registration{Name: "Kiran", Email: "kiran@example.com", Phone: "123"})
	if err != nil {
		t.Fatal(err)
	}
	if reg.Payload.MemberSince != "2026-03" || reg.Payload.ID[:2] != "u_" {
		t.Fatalf("unexpected registration: %+v", reg.Payload)
	}

	tok := reg.Extra["token"].(string)
	me, err := a.Auth.Profile(ctx, tok)
	if err != nil {
		t.Fatal(err)
	}
	if me.Payload.ID != reg.Payload.ID || me.Payload.Name != "Kiran" || me.Payload.Email != "kiran@example.com" {
		t.Fatalf("profile mismatch: %+v", me.Payload)
	}

	if _, err := a.Auth.Profile(ctx, "garbage"); !errors.Is(err, app.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestContact_SendMessage(t *testing.T) {
	a := newAPI(t, 0)
	env, err := a.Contact.SendMessage(context.Background(), domain.ContactMessage{
		Name: "Asha", Email: "asha@example.com", Message: "Need a Goa quote",
	})
	if err != nil {
		t.Fatal(err)
	}
	d := data(t, env)
	if d["success"] != true || d["message"] == "" {
		t.Fatalf("unexpected ack: %#v", d)
	}
	if ref, _ := d["reference"].(string); len(ref) != 36 {
		t.Fatalf("want uuid reference, got %#v", d["reference"])
	}
	if len(d) != 3 {
		t.Fatalf("ack carries no entity, got keys %v", d)
	}
}

func TestDashboardAndContent(t *testing.T) {
	a := newAPI(t, 0)
	ctx := context.Background()

	checks := []struct {
		key string
		get func() (any, error)
	}{
		{"overview", func() (any, error) { return a.Dashboard.GetOverview(ctx) }},
		{"purchases", func() (any, error) { return a.Dashboard.GetPurchaseHistory(ctx) }},
		{"services", func() (any, error) { return a.Dashboard.GetAvailedServices(ctx) }},
		{"balance", func() (any, error) { return a.Dashboard.GetBalanceData(ctx) }},
		{"testimonials", func() (any, error) { return a.Content.Testimonials(ctx) }},
		{"team", func() (any, error) { return a.Content.Team(ctx) }},
		{"stats", func() (any, error) { return a.Content.Stats(ctx) }},
		{"contactInfo", func() (any, error) { return a.Content.ContactInfo(ctx) }},
	}
	for _, c := range checks {
		env, err := c.get()
		if err != nil {
			t.Fatalf("%s: %v", c.key, err)
		}
		d := data(t, env)
		if d["success"] != true || d[c.key] == nil {
			t.Fatalf("%s: unexpected body %#v", c.key, d)
		}
	}
}

func TestLatency_CancelledContext(t *testing.T) {
	a := newAPI(t, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := a.Destinations.GetAll(ctx, catalog.Defaults())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("cancellation did not cut the wait short")
	}
}

func TestLatency_Waits(t *testing.T) {
	a := newAPI(t, 30*time.Millisecond)
	start := time.Now()
	if _, err := a.Dashboard.GetOverview(context.Background()); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Fatal("returned before the simulated latency")
	}
}

func TestAPICalls_OutcomeLabels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newAPI(t, time.Second).Dashboard.GetOverview(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if _, err := newAPI(t, 0).Dashboard.GetOverview(context.Background()); err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	observability.MetricsHandler(observability.InitRegistry()).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	out := rr.Body.String()
	for _, want := range []string{
		`worldacross_api_calls_total{op="dashboard.overview",outcome="cancelled"}`,
		`worldacross_api_calls_total{op="dashboard.overview",outcome="ok"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
	if strings.Contains(out, `outcome="empty"`) {
		t.Fatal("unexpected outcome label empty")
	}
}
