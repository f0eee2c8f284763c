package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
	"github.com/samirrijal/crestfield/internal/mapview"
)

//go:embed views/*.html
var viewsFS embed.FS

var pageNames = []string{"home", "about", "services", "locator", "contact"}

// Pages renders the server-side site.
type Pages struct {
	deps      *Dependencies
	templates map[string]*template.Template
}

// NewPages parses every page together with the shared layout.
func NewPages(deps *Dependencies) (*Pages, error) {
	funcs := template.FuncMap{
		"title": func(s string) string { return cases.Title(language.English).String(s) },
		"upper": strings.ToUpper,
		"join":  strings.Join,
		"coord": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}

	p := &Pages{deps: deps, templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(viewsFS, "views/layout.html", "views/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		p.templates[name] = t
	}
	return p, nil
}

type pageData struct {
	Title  string
	Active string
	Site   Site
	Chat   ChatWidget
	Year   int
	Body   any
}

func (p *Pages) render(c *fiber.Ctx, status int, name, title string, body any) error {
	chat, err := chatWidget(p.deps)
	if err != nil {
		return errInternal(c, err)
	}
	data := pageData{
		Title:  title,
		Active: name,
		Site:   p.deps.Site,
		Chat:   chat,
		Year:   time.Now().Year(),
		Body:   body,
	}

	var buf bytes.Buffer
	if err := p.templates[name].Execute(&buf, data); err != nil {
		return errInternal(c, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

type homePage struct {
	Stations int
	Regions  int
}

// Home renders the landing page.
func (p *Pages) Home(c *fiber.Ctx) error {
	stations, err := p.deps.Stations.List(c.UserContext())
	if err != nil {
		return errInternal(c, err)
	}
	return p.render(c, fiber.StatusOK, "home", "Powering Progress Across Nigeria",
		homePage{Stations: len(stations), Regions: len(domain.Regions(stations))})
}

// About renders the company page.
func (p *Pages) About(c *fiber.Ctx) error {
	return p.render(c, fiber.StatusOK, "about", "About Us", nil)
}

// Services renders the services catalogue.
func (p *Pages) Services(c *fiber.Ctx) error {
	return p.render(c, fiber.StatusOK, "services", "Our Services", domain.ServiceCatalogue())
}

type locatorStation struct {
	domain.Station
	Directions []domain.DirectionsLink
	Chat       domain.ChatLink
}

type locatorMap struct {
	ID        string
	EventsURL string
	RetryURL  string
	View      mapview.View
}

type locatorPage struct {
	Query      string
	Stations   []locatorStation
	Regions    int
	FuelTypes  int
	Center     domain.GeoPoint
	Zoom       int
	GeoJSONURL string
	Map        *locatorMap
}

// locatorSettleWait bounds how long the page waits for the map SDK before
// rendering the loading state.
const locatorSettleWait = 2 * time.Second

// Locator renders the station list, filtered by ?q=, with the map container.
func (p *Pages) Locator(c *fiber.Ctx) error {
	q := c.Query("q")
	stations, err := p.deps.Stations.Search(c.UserContext(), q)
	if err != nil {
		return errFromDomain(c, err)
	}

	body := locatorPage{
		Query:      q,
		Stations:   make([]locatorStation, 0, len(stations)),
		Regions:    len(domain.Regions(stations)),
		FuelTypes:  3,
		Center:     p.deps.Site.Center,
		Zoom:       domain.DefaultZoom(len(stations)),
		GeoJSONURL: "/v1/stations/geojson?q=" + url.QueryEscape(q),
	}
	for _, st := range stations {
		chat, err := p.deps.Chat.StationLink(st)
		if err != nil {
			return errInternal(c, err)
		}
		body.Stations = append(body.Stations, locatorStation{
			Station:    st,
			Directions: p.deps.Directions.Links(st),
			Chat:       chat,
		})
	}
	if p.deps.Maps != nil && p.deps.Site.MapScriptURL != "" {
		s, err := p.locatorSession(c, stations)
		if err != nil {
			return errFromDomain(c, err)
		}
		body.Map = &locatorMap{
			ID:        s.ID,
			EventsURL: "/v1/map/sessions/" + s.ID + "/events",
			RetryURL:  "/locator/map/" + s.ID + "/retry",
			View:      s.View(),
		}
	}
	return p.render(c, fiber.StatusOK, "locator", "Station Locator", body)
}

// locatorSession reuses the session named by ?session= when it is still live,
// otherwise mounts a new one, then waits briefly for the SDK load to settle.
func (p *Pages) locatorSession(c *fiber.Ctx, stations []domain.Station) (*mapview.Session, error) {
	s, err := p.deps.Maps.Get(c.Query("session"))
	if err != nil {
		if s, err = p.deps.Maps.Mount(c.UserContext(), stations); err != nil {
			return nil, err
		}
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), locatorSettleWait)
	defer cancel()
	_, _ = s.Settled(ctx)
	return s, nil
}

// RetryMap restarts a failed map load and sends the browser back to the locator.
func (p *Pages) RetryMap(c *fiber.Ctx) error {
	id := c.Params("id")
	target := url.Values{}
	if q := c.FormValue("q"); q != "" {
		target.Set("q", q)
	}

	s, err := p.deps.Maps.Get(id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
	case err != nil:
		return errFromDomain(c, err)
	default:
		if err := s.Retry(c.UserContext()); err != nil && !errors.Is(err, mapview.ErrNotRetryable) {
			return errFromDomain(c, err)
		}
		target.Set("session", id)
	}

	loc := "/locator"
	if len(target) > 0 {
		loc += "?" + target.Encode()
	}
	return c.Redirect(loc, fiber.StatusSeeOther)
}

type contactPage struct {
	Contact       domain.ContactForm
	Quote         domain.QuoteForm
	ContactErrors map[string]string
	QuoteErrors   map[string]string
	Ack           *domain.Acknowledgment
	CustomerTypes []string
	FuelTypes     []string
}

func newContactPage() contactPage {
	return contactPage{CustomerTypes: domain.CustomerTypes, FuelTypes: domain.FuelTypes}
}

// Contact renders the contact and quote forms.
func (p *Pages) Contact(c *fiber.Ctx) error {
	return p.render(c, fiber.StatusOK, "contact", "Contact Us", newContactPage())
}

// SubmitContact handles the contact form post.
func (p *Pages) SubmitContact(c *fiber.Ctx) error {
	body := newContactPage()
	if err := c.BodyParser(&body.Contact); err != nil {
		return errBadRequest(c, "invalid form")
	}
	ack, err := p.deps.Inquiries.SubmitContact(c.UserContext(), body.Contact)
	return p.afterSubmit(c, body, domain.KindContact, ack, err)
}

// SubmitQuote handles the quote form post.
func (p *Pages) SubmitQuote(c *fiber.Ctx) error {
	body := newContactPage()
	if err := c.BodyParser(&body.Quote); err != nil {
		// a non-numeric quantity is the only field that can fail to decode; an empty one decodes to zero
		body.QuoteErrors = map[string]string{"quantity": "must be a number"}
		return p.render(c, fiber.StatusUnprocessableEntity, "contact", "Contact Us", body)
	}
	ack, err := p.deps.Inquiries.SubmitQuote(c.UserContext(), body.Quote)
	return p.afterSubmit(c, body, domain.KindQuote, ack, err)
}

func (p *Pages) afterSubmit(c *fiber.Ctx, body contactPage, kind domain.InquiryKind, ack *domain.Acknowledgment, err error) error {
	if v, ok := usecases.IsValidation(err); ok {
		if kind == domain.KindQuote {
			body.QuoteErrors = v.Fields
		} else {
			body.ContactErrors = v.Fields
		}
		return p.render(c, fiber.StatusUnprocessableEntity, "contact", "Contact Us", body)
	}
	if err != nil {
		return errInternal(c, err)
	}
	body.Ack = ack
	body.Contact, body.Quote = domain.ContactForm{}, domain.QuoteForm{}
	return p.render(c, fiber.StatusOK, "contact", "Contact Us", body)
}
