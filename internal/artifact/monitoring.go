package artifact

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// GrafanaDatasource describes one entry of a Grafana datasource
// provisioning document.
type GrafanaDatasource struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Access    string `yaml:"access"`
	URL       string `yaml:"url"`
	IsDefault bool   `yaml:"isDefault"`
	Editable  bool   `yaml:"editable"`
}

// DatasourceDocument is the full datasource provisioning document.
type DatasourceDocument struct {
	APIVersion  int                 `yaml:"apiVersion"`
	Datasources []GrafanaDatasource `yaml:"datasources"`
}

// PrometheusDatasource wires the metrics backend into Grafana. The URL uses
// the compose service name: Grafana reaches Prometheus over the stack's
// internal network, not the published host port.
func PrometheusDatasource() DatasourceDocument {
	return DatasourceDocument{
		APIVersion: 1,
		Datasources: []GrafanaDatasource{
			{
				Name:      "Prometheus",
				Type:      "prometheus",
				Access:    "proxy",
				URL:       "http://prometheus:9090",
				IsDefault: true,
				Editable:  false,
			},
		},
	}
}

// DashboardProvider describes one entry of a Grafana dashboard provider
// provisioning document.
type DashboardProvider struct {
	Name            string            `yaml:"name"`
	OrgID           int               `yaml:"orgId"`
	Folder          string            `yaml:"folder"`
	Type            string            `yaml:"type"`
	DisableDeletion bool              `yaml:"disableDeletion"`
	UpdateInterval  int               `yaml:"updateIntervalSeconds"`
	Options         map[string]string `yaml:"options"`
}

// DashboardDocument is the full dashboard provider provisioning document.
type DashboardDocument struct {
	APIVersion int                 `yaml:"apiVersion"`
	Providers  []DashboardProvider `yaml:"providers"`
}

// FileDashboardProvider loads dashboards from a fixed on-disk directory,
// rescanned every 10 seconds.
func FileDashboardProvider() DashboardDocument {
	return DashboardDocument{
		APIVersion: 1,
		Providers: []DashboardProvider{
			{
				Name:            "tradingbot",
				OrgID:           1,
				Folder:          "",
				Type:            "file",
				DisableDeletion: false,
				UpdateInterval:  10,
				Options: map[string]string{
					"path": "/var/lib/grafana/dashboards",
				},
			},
		},
	}
}

// Render serializes the datasource document to YAML.
func (d DatasourceDocument) Render() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal datasource document: %w", err)
	}
	return out, nil
}

// Render serializes the dashboard provider document to YAML.
func (d DashboardDocument) Render() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dashboard document: %w", err)
	}
	return out, nil
}

// ParseDatasourceDocument reads a rendered datasource document back.
func ParseDatasourceDocument(content []byte) (DatasourceDocument, error) {
	var d DatasourceDocument
	if err := yaml.Unmarshal(content, &d); err != nil {
		return DatasourceDocument{}, fmt.Errorf("failed to parse datasource document: %w", err)
	}
	return d, nil
}

// ParseDashboardDocument reads a rendered dashboard document back.
func ParseDashboardDocument(content []byte) (DashboardDocument, error) {
	var d DashboardDocument
	if err := yaml.Unmarshal(content, &d); err != nil {
		return DashboardDocument{}, fmt.Errorf("failed to parse dashboard document: %w", err)
	}
	return d, nil
}
