package mapview

import (
	"bytes"
	"html/template"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// Popup actions.
const (
	ActionSelect = "select"
	ActionRoute  = "route"
)

// PopupAction is a button rendered inside a marker popup.
type PopupAction struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Popup is the info window opened by clicking a marker.
type Popup struct {
	StationID int           `json:"station_id"`
	HTML      string        `json:"html"`
	Actions   []PopupAction `json:"actions"`
}

var popupTmpl = template.Must(template.New("popup").Parse(`<div class="station-popup" data-station-id="{{.Station.ID}}">
<h3>{{.Station.Name}}</h3>
<p class="address">{{.Station.Address}}</p>
<div class="meta"><div class="phone">{{.Station.Phone}}</div><div class="hours">{{.Station.Hours}}</div></div>
{{range .Actions}}<button type="button" data-action="{{.Name}}" data-station-id="{{$.Station.ID}}">{{.Label}}</button>
{{end}}</div>`))

func renderPopup(st domain.Station, routing bool) (Popup, error) {
	actions := []PopupAction{{Name: ActionSelect, Label: "Get Directions"}}
	if routing {
		actions = append(actions, PopupAction{Name: ActionRoute, Label: "Show Route"})
	}

	var buf bytes.Buffer
	err := popupTmpl.Execute(&buf, struct {
		Station domain.Station
		Actions []PopupAction
	}{st, actions})
	if err != nil {
		return Popup{}, err
	}
	return Popup{StationID: st.ID, HTML: buf.String(), Actions: actions}, nil
}
