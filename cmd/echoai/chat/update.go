package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		footerHeight := 2
		inputHeight := m.textarea.Height() + 1
		vpHeight := m.height - headerHeight - footerHeight - inputHeight
		if vpHeight < 3 {
			vpHeight = 3
		}

		if !m.ready {
			m.viewport = newViewport(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(m.width - 2)
		m.services.SetSize(m.width, m.height-2)

		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case servicesLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("service list unavailable", zap.Error(msg.err))
			return m, nil
		}
		items := make([]list.Item, len(msg.services))
		for i, svc := range msg.services {
			items[i] = svc
		}
		m.services.SetItems(items)
		return m, nil

	case sendCompleteMsg:
		m.sending = false
		if msg.err != nil {
			m.logger.Warn("send rejected", zap.Error(msg.err))
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	if m.mode == ChatView {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ServicePickerView:
		switch msg.String() {
		case "esc":
			m.mode = ChatView
			return m, nil
		case "enter":
			if item, ok := m.services.SelectedItem().(serviceItem); ok {
				m.switchService(item)
			}
			m.mode = ChatView
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.services, cmd = m.services.Update(msg)
		return m, cmd

	default:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			if len(m.services.Items()) > 0 {
				m.mode = ServicePickerView
			}
			return m, nil
		case "enter":
			// Input stays disabled while a send is in flight; the reply to
			// the previous message must land before the next one goes out.
			if m.sending {
				return m, nil
			}
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.sending = true
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.sendMessage(text), m.spinner.Tick)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// switchService moves the conversation to a new persona and drops the old
// thread.
func (m *Model) switchService(item serviceItem) {
	current := m.dispatcher.Handle().ServiceID
	if item.service.ID == current {
		return
	}

	m.dispatcher.SwitchService(item.service.ID)
	m.dispatcher.SystemNote("Switched to " + item.service.Name + ". This starts a new conversation.")
	m.logger.Info("service switched", zap.String("service", item.service.ID))
}
