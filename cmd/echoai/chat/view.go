package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"echoai/internal/dispatch"
	"echoai/internal/ux"
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return vp
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.mode == ServicePickerView {
		return m.services.View()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.sending {
		b.WriteString(m.styles.Muted.Render(m.spinner.View() + " Echo is thinking..."))
	} else {
		b.WriteString(m.textarea.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "ECHO AI"
	if svc := m.dispatcher.Handle().ServiceID; svc != "" {
		title = fmt.Sprintf("ECHO AI — %s", serviceName(m, svc))
	}
	return m.styles.Header.Width(m.width).Render(title)
}

func (m Model) renderFooter() string {
	parts := []string{"enter: send", "ctrl+s: companions", "esc: quit"}

	if notice, ok := m.feed.Latest(); ok {
		style := m.styles.Info
		switch notice.Level {
		case ux.LevelError:
			style = m.styles.Error
		case ux.LevelSuccess:
			style = m.styles.Success
		}
		parts = append(parts, style.Render(notice.Message))
	}

	return m.styles.Footer.Render(strings.Join(parts, "  •  "))
}

// serviceName resolves a service id to its display name via the loaded
// picker items, falling back to the raw id.
func serviceName(m Model, id string) string {
	for _, item := range m.services.Items() {
		if svc, ok := item.(serviceItem); ok && svc.service.ID == id {
			return svc.service.Name
		}
	}
	return id
}

func (m Model) renderHistory() string {
	turns := m.dispatcher.Transcript()
	if len(turns) == 0 {
		return m.styles.Muted.Render("Start the conversation whenever you're ready.")
	}

	var b strings.Builder
	for _, turn := range turns {
		switch turn.Role {
		case dispatch.RoleUser:
			b.WriteString(m.styles.UserMessage.Render("You: " + turn.Content))
		case dispatch.RoleAssistant:
			content := m.safeRenderMarkdown(turn.Content)
			label := "Echo"
			if turn.Fallback {
				label = "Echo (limited)"
			}
			b.WriteString(m.styles.EchoMessage.Render(label + ": " + strings.TrimRight(content, "\n")))
		case dispatch.RoleSystem:
			b.WriteString(m.styles.SystemNotice.Render(turn.Content))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// safeRenderMarkdown renders through glamour, falling back to plain text
// if rendering panics or fails.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}
