package panel

import (
	"bytes"
	"fmt"
	"html/template"
)

var detailTemplate = template.Must(template.New("detail").Parse(`<div class="detail" data-node-id="{{.NodeID}}">
<div id="detail-numeral">{{.Heading}}</div>
<h2 id="detail-title">{{.Title}}</h2>
<p id="detail-body">{{.Body}}</p>
<div id="detail-themes">{{range .Badges}}<span class="theme-badge {{if .Primary}}primary{{else}}secondary{{end}}" style="background-color: {{.Color}}">{{.Theme}}</span>{{end}}</div>
<h3 id="connections-header">{{.ConnectionsHeader}}</h3>
<div id="detail-connections">{{range .Connections}}<div class="connection-item" data-node-id="{{.ID}}"><span class="connection-numeral">{{.Numeral}}</span>{{.Title}}</div>{{end}}</div>
</div>`))

// Render produces the escaped HTML fragment for the detail panel
func Render(d Detail) (string, error) {
	var buf bytes.Buffer
	if err := detailTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("failed to render detail panel: %w", err)
	}
	return buf.String(), nil
}
