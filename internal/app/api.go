package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"worldacross/internal/adapters/observability"
	"worldacross/internal/catalog"
	"worldacross/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// API is the data-access façade the HTTP layer talks to. Every call waits
// the configured latency and wraps its result in an Envelope. Lookup misses
// come back as success with a null payload, not as errors.
type API struct {
	Destinations *DestinationsAPI
	Packages     *PackagesAPI
	Memberships  *MembershipsAPI
	Auth         *AuthAPI
	Contact      *ContactAPI
	Dashboard    *DashboardAPI
	Content      *ContentAPI
}

type Options struct {
	Latency time.Duration
	Tokens  domain.TokenIssuer // nil: login returns no token
	Now     func() time.Time
}

func NewAPI(q *QueryService, content domain.ContentRepository, opts Options) *API {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := core{latency: opts.Latency}
	return &API{
		Destinations: &DestinationsAPI{core: c, q: q},
		Packages:     &PackagesAPI{core: c, q: q},
		Memberships:  &MembershipsAPI{core: c, q: q},
		Auth:         &AuthAPI{core: c, tokens: opts.Tokens, now: opts.Now},
		Contact:      &ContactAPI{core: c},
		Dashboard:    &DashboardAPI{core: c},
		Content:      &ContentAPI{core: c, repo: content},
	}
}

type core struct {
	latency time.Duration
}

// wait simulates the network round trip; a cancelled ctx ends it early.
func (c core) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func call[T any](ctx context.Context, c core, op string, fn func() (Envelope[T], error)) (Envelope[T], error) {
	if err := c.wait(ctx); err != nil {
		observability.ObserveAPICall(op, "cancelled")
		return Envelope[T]{}, err
	}
	env, err := fn()
	if err != nil {
		observability.ObserveAPICall(op, "error")
		return Envelope[T]{}, err
	}
	observability.ObserveAPICall(op, "ok")
	return env, nil
}

// found turns a repository miss into a nil payload.
func found[T any](v T, err error) (*T, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func lookupMessage[T any](v *T, what string) string {
	if v == nil {
		return what + " not found"
	}
	return what + " fetched successfully"
}

/********** destinations **********/

type DestinationsAPI struct {
	core
	q *QueryService
}

func (a *DestinationsAPI) GetAll(ctx context.Context, c catalog.Criteria) (Envelope[[]domain.Destination], error) {
	return call(ctx, a.core, "destinations.getAll", func() (Envelope[[]domain.Destination], error) {
		all, err := a.q.ListDestinations(ctx)
		if err != nil {
			return Envelope[[]domain.Destination]{}, err
		}
		return ok("destinations", "Destinations fetched successfully", catalog.Destinations(all, c)), nil
	})
}

func (a *DestinationsAPI) GetByID(ctx context.Context, id int64) (Envelope[*domain.Destination], error) {
	return call(ctx, a.core, "destinations.getById", func() (Envelope[*domain.Destination], error) {
		v, err := a.q.GetDestination(ctx, id)
		d, err := found(v, err)
		if err != nil {
			return Envelope[*domain.Destination]{}, err
		}
		return ok("destination", lookupMessage(d, "Destination"), d), nil
	})
}

/********** packages **********/

// PackageQuery narrows Packages.GetAll. Limit <= 0 means no limit.
type PackageQuery struct {
	catalog.Criteria
	Featured bool
	Limit    int
}

type PackagesAPI struct {
	core
	q *QueryService
}

func (a *PackagesAPI) GetAll(ctx context.Context, pq PackageQuery) (Envelope[[]domain.Package], error) {
	return call(ctx, a.core, "packages.getAll", func() (Envelope[[]domain.Package], error) {
		all, err := a.q.ListPackages(ctx)
		if err != nil {
			return Envelope[[]domain.Package]{}, err
		}
		preds := catalog.PackagePredicates(pq.Criteria)
		if pq.Featured {
			preds = append(preds, func(p domain.Package) bool { return p.Featured })
		}
		out := catalog.Apply(all, preds...)
		if pq.Limit > 0 && pq.Limit < len(out) {
			out = out[:pq.Limit]
		}
		return ok("packages", "Packages fetched successfully", out), nil
	})
}

func (a *PackagesAPI) GetByID(ctx context.Context, id int64) (Envelope[*domain.Package], error) {
	return call(ctx, a.core, "packages.getById", func() (Envelope[*domain.Package], error) {
		v, err := a.q.GetPackage(ctx, id)
		p, err := found(v, err)
		if err != nil {
			return Envelope[*domain.Package]{}, err
		}
		return ok("package", lookupMessage(p, "Package"), p), nil
	})
}

// Search matches q against title, description and destination.
// An empty q returns every package.
func (a *PackagesAPI) Search(ctx context.Context, q string) (Envelope[[]domain.Package], error) {
	return call(ctx, a.core, "packages.search", func() (Envelope[[]domain.Package], error) {
		all, err := a.q.ListPackages(ctx)
		if err != nil {
			return Envelope[[]domain.Package]{}, err
		}
		out := catalog.Packages(all, catalog.Criteria{Query: q})
		return ok("packages", "Search results", out), nil
	})
}

/********** memberships **********/

type MembershipsAPI struct {
	core
	q *QueryService
}

func (a *MembershipsAPI) GetAll(ctx context.Context, c catalog.Criteria) (Envelope[[]domain.Membership], error) {
	return call(ctx, a.core, "memberships.getAll", func() (Envelope[[]domain.Membership], error) {
		all, err := a.q.ListMemberships(ctx)
		if err != nil {
			return Envelope[[]domain.Membership]{}, err
		}
		return ok("memberships", "Memberships fetched successfully", catalog.Memberships(all, c)), nil
	})
}

func (a *MembershipsAPI) GetByID(ctx context.Context, id int64) (Envelope[*domain.Membership], error) {
	return call(ctx, a.core, "memberships.getById", func() (Envelope[*domain.Membership], error) {
		v, err := a.q.GetMembership(ctx, id)
		m, err := found(v, err)
		if err != nil {
			return Envelope[*domain.Membership]{}, err
		}
		return ok("membership", lookupMessage(m, "Membership"), m), nil
	})
}

/********** auth (mock) **********/

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AuthAPI never checks passwords. The premium address gets the premium
// profile; any other address gets the standard profile under that address.
type AuthAPI struct {
	core
	tokens domain.TokenIssuer
	now    func() time.Time
}

func profileFor(email string) domain.UserProfile {
	if strings.EqualFold(strings.TrimSpace(email), PremiumEmail) {
		return premiumUser()
	}
	return standardUser(strings.TrimSpace(email))
}

func (a *AuthAPI) withToken(env Envelope[domain.UserProfile], u domain.UserProfile) (Envelope[domain.UserProfile], error) {
	if a.tokens == nil {
		return env, nil
	}
	tok, err := a.tokens.Issue(domain.Identity{UserID: u.ID, Email: u.Email, Name: u.Name})
	if err != nil {
		return Envelope[domain.UserProfile]{}, err
	}
	return env.with("token", tok), nil
}

func (a *AuthAPI) Login(ctx context.Context, c Credentials) (Envelope[domain.UserProfile], error) {
	return call(ctx, a.core, "auth.login", func() (Envelope[domain.UserProfile], error) {
		u := profileFor(c.Email)
		return a.withToken(ok("user", "Login successful", u), u)
	})
}

func (a *AuthAPI) Register(ctx context.Context, r Registration) (Envelope[domain.UserProfile], error) {
	return call(ctx, a.core, "auth.register", func() (Envelope[domain.UserProfile], error) {
		u := domain.UserProfile{
			ID:          "u_" + uuid.NewString(),
			Name:        strings.TrimSpace(r.Name),
			Email:       strings.TrimSpace(r.Email),
			Phone:       strings.TrimSpace(r.Phone),
			Membership:  domain.MembershipStatus{Plan: "None"},
			MemberSince: a.now().Format("2006-01"),
		}
		return a.withToken(ok("user", "Registration successful", u), u)
	})
}

// Profile resolves a token issued by Login or Register back to a profile.
func (a *AuthAPI) Profile(ctx context.Context, token string) (Envelope[domain.UserProfile], error) {
	return call(ctx, a.core, "auth.profile", func() (Envelope[domain.UserProfile], error) {
		if a.tokens == nil {
			return Envelope[domain.UserProfile]{}, ErrInvalidToken
		}
		id, err := a.tokens.Verify(token)
		if err != nil {
			return Envelope[domain.UserProfile]{}, ErrInvalidToken
		}
		u := profileFor(id.Email)
		if u.Email != PremiumEmail {
			u.ID, u.Name = id.UserID, id.Name
		}
		return ok("user", "Profile fetched successfully", u), nil
	})
}

/********** contact **********/

type ContactAPI struct {
	core
}

const contactAck = "Thank you for reaching out! Our travel experts will get back to you within 24 hours."

// SendMessage only logs the submission; nothing is stored or forwarded.
func (a *ContactAPI) SendMessage(ctx context.Context, m domain.ContactMessage) (Envelope[any], error) {
	return call(ctx, a.core, "contact.sendMessage", func() (Envelope[any], error) {
		ref := uuid.NewString()
		log.Info().
			Str("reference", ref).
			Str("name", m.Name).
			Str("email", m.Email).
			Str("subject", m.Subject).
			Int("message_len", len(m.Message)).
			Msg("contact message received")
		return Envelope[any]{Success: true, Message: contactAck}.with("reference", ref), nil
	})
}

/********** dashboard (mock) **********/

type DashboardAPI struct {
	core
}

func (a *DashboardAPI) GetOverview(ctx context.Context) (Envelope[domain.Overview], error) {
	return call(ctx, a.core, "dashboard.overview", func() (Envelope[domain.Overview], error) {
		return ok("overview", "Overview fetched successfully", overviewFixture()), nil
	})
}

func (a *DashboardAPI) GetPurchaseHistory(ctx context.Context) (Envelope[[]domain.Purchase], error) {
	return call(ctx, a.core, "dashboard.purchases", func() (Envelope[[]domain.Purchase], error) {
		return ok("purchases", "Purchase history fetched successfully", purchasesFixture()), nil
	})
}

func (a *DashboardAPI) GetAvailedServices(ctx context.Context) (Envelope[[]domain.AvailedService], error) {
	return call(ctx, a.core, "dashboard.services", func() (Envelope[[]domain.AvailedService], error) {
		return ok("services", "Availed services fetched successfully", servicesFixture()), nil
	})
}

func (a *DashboardAPI) GetBalanceData(ctx context.Context) (Envelope[domain.Balance], error) {
	return call(ctx, a.core, "dashboard.balance", func() (Envelope[domain.Balance], error) {
		return ok("balance", "Balance fetched successfully", balanceFixture()), nil
	})
}

/********** content **********/

type ContentAPI struct {
	core
	repo domain.ContentRepository
}

func (a *ContentAPI) Testimonials(ctx context.Context) (Envelope[[]domain.Testimonial], error) {
	return call(ctx, a.core, "content.testimonials", func() (Envelope[[]domain.Testimonial], error) {
		v, err := a.repo.Testimonials(ctx)
		if err != nil {
			return Envelope[[]domain.Testimonial]{}, err
		}
		return ok("testimonials", "Testimonials fetched successfully", v), nil
	})
}

func (a *ContentAPI) Team(ctx context.Context) (Envelope[[]domain.TeamMember], error) {
	return call(ctx, a.core, "content.team", func() (Envelope[[]domain.TeamMember], error) {
		v, err := a.repo.Team(ctx)
		if err != nil {
			return Envelope[[]domain.TeamMember]{}, err
		}
		return ok("team", "Team fetched successfully", v), nil
	})
}

func (a *ContentAPI) Stats(ctx context.Context) (Envelope[[]domain.CompanyStat], error) {
	return call(ctx, a.core, "content.stats", func() (Envelope[[]domain.CompanyStat], error) {
		v, err := a.repo.Stats(ctx)
		if err != nil {
			return Envelope[[]domain.CompanyStat]{}, err
		}
		return ok("stats", "Stats fetched successfully", v), nil
	})
}

func (a *ContentAPI) ContactInfo(ctx context.Context) (Envelope[domain.ContactInfo], error) {
	return call(ctx, a.core, "content.contactInfo", func() (Envelope[domain.ContactInfo], error) {
		v, err := a.repo.ContactInfo(ctx)
		if err != nil {
			return Envelope[domain.ContactInfo]{}, err
		}
		return ok("contactInfo", "Contact info fetched successfully", v), nil
	})
}
