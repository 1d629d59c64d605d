package embed

import (
	"bytes"
	"html/template"
)

// AreaDetail groups the clinics of one geographic area, in source order.
type AreaDetail struct {
	Area    string         `json:"area"`
	Clinics []ClinicDetail `json:"clinics"`
}

// ClinicDetail holds one clinic's contact facts. Missing text fields render
// as empty cells; MapURL is optional and controls whether an embedded map
// iframe is emitted.
type ClinicDetail struct {
	Name     string `json:"name"`
	Hours    string `json:"hours"`
	Closed   string `json:"closed"`
	Address  string `json:"address"`
	Stations string `json:"stations"`
	MapURL   string `json:"mapUrl,omitempty"`
}

// The accordion is a two-level disclosure list: outer items keyed by area,
// inner items one per clinic. Open/closed state lives entirely in the hidden
// checkboxes; the stylesheet keys the body reveal and the toggle glyph off
// :checked, so no script drives the toggle.
var accordionTmpl = template.Must(template.New("accordion").Parse(`<div class="clinic-accordion">
{{- range $ai, $area := .Areas}}
<div class="clinic-accordion__area">
<input type="checkbox" id="{{$.IDPrefix}}-area-{{$ai}}" class="clinic-accordion__toggle">
<label for="{{$.IDPrefix}}-area-{{$ai}}" class="clinic-accordion__header"><span class="clinic-accordion__label">{{$area.Area}}</span><span class="clinic-accordion__icon"></span></label>
<div class="clinic-accordion__body">
{{- range $ci, $clinic := $area.Clinics}}
<div class="clinic-accordion__clinic">
<input type="checkbox" id="{{$.IDPrefix}}-area-{{$ai}}-clinic-{{$ci}}" class="clinic-accordion__toggle">
<label for="{{$.IDPrefix}}-area-{{$ai}}-clinic-{{$ci}}" class="clinic-accordion__header clinic-accordion__header--clinic"><span class="clinic-accordion__label">{{$clinic.Name}}</span><span class="clinic-accordion__icon"></span></label>
<div class="clinic-accordion__body">
<table class="clinic-accordion__table">
<tr><th>Hours</th><td>{{$clinic.Hours}}</td></tr>
<tr><th>Closed</th><td>{{$clinic.Closed}}</td></tr>
<tr><th>Address</th><td>{{$clinic.Address}}</td></tr>
<tr><th>Stations</th><td>{{$clinic.Stations}}</td></tr>
</table>
{{- if $clinic.MapURL}}
<iframe class="clinic-accordion__map" src="{{$clinic.MapURL}}" loading="lazy"></iframe>
{{- end}}
</div>
</div>
{{- end}}
</div>
</div>
{{- end}}
</div>`))

type accordionData struct {
	IDPrefix string
	Areas    []AreaDetail
}

// buildAccordion renders the details accordion markup. Checkbox ids are
// prefixed with the host parent id so multiple instances on one page don't
// cross-wire their labels.
func buildAccordion(idPrefix string, areas []AreaDetail) (string, error) {
	var buf bytes.Buffer
	err := accordionTmpl.Execute(&buf, accordionData{IDPrefix: idPrefix, Areas: areas})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
