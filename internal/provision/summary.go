package provision

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/omario75013/tradingbot-v5/internal/artifact"
	"github.com/omario75013/tradingbot-v5/internal/ui"
)

// summaryStep renders the final report: reachable endpoints, default
// monitoring credentials and the generated command list. Pure read/render,
// no side effects, cannot fail.
type summaryStep struct{}

func (summaryStep) Name() string { return "Summary" }

func (summaryStep) rendersOwnOutput() {}

func (summaryStep) Run(_ context.Context, hc *Context) error {
	addr := externalAddress()

	fmt.Println()
	ui.Title("Provisioning complete")

	ui.KeyValue("Install directory", hc.Config.InstallDir)
	ui.KeyValue("Grafana", fmt.Sprintf("http://%s:%d (admin / admin, change on first login)", addr, hc.Config.Ports.Grafana))
	ui.KeyValue("Prometheus", fmt.Sprintf("http://%s:%d", addr, hc.Config.Ports.Prometheus))
	ui.KeyValue("Metrics endpoint", fmt.Sprintf("http://%s:%d/metrics", addr, hc.Config.Ports.Metrics))

	fmt.Println()
	ui.Title("Management commands")
	for _, script := range artifact.ManagementScripts(hc.Config.ServiceName, hc.Config.InstallDir, hc.Config.Branch) {
		ui.KeyValue(script.Name, script.Description)
	}

	for _, warning := range hc.Warnings {
		fmt.Println()
		ui.Warn(warning)
	}

	fmt.Println()
	switch hc.Launch {
	case LaunchAwaitingConfiguration:
		ui.Warn("the stack is configured but NOT started: required secrets still hold placeholders")
		ui.KeyValue("Pending keys", strings.Join(hc.Pending, ", "))
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Printf("  1. %s\n", ui.Bold(hc.Config.ServiceName+"-config")+"  "+ui.Dim("fill in the pending keys"))
		fmt.Printf("  2. %s\n", ui.Bold(hc.Config.ServiceName+"-start")+"   "+ui.Dim("bring the stack up"))
	case LaunchStarted:
		ui.Success("Stack is running.")
		for _, st := range hc.Statuses {
			ui.KeyValue(st.Service, fmt.Sprintf("%s (%s)", st.State, st.Detail))
		}
	default:
		if hc.LaunchErr != nil {
			fmt.Println(ui.FormatError("stack bring-up failed", hc.LaunchErr.Error(),
				"all artifacts were written; fix the cause and run "+hc.Config.ServiceName+"-start"))
		}
	}

	return nil
}

// externalAddress resolves the host's externally reachable address using an
// outbound route lookup; no packet is sent. Degrades to a placeholder.
func externalAddress() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "<server-ip>"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "<server-ip>"
}
