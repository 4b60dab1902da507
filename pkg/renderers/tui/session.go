package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

const (
	noneOption = "(none)"
	dateLayout = "2006-01-02"
)

type menuAction int

const (
	actionFill menuAction = iota
	actionSwitch
	actionEdit
	actionDelete
	actionShow
	actionCancel
	actionQuit
)

var menuLabels = []string{
	actionFill:   "Fill form",
	actionSwitch: "Switch form type",
	actionEdit:   "Edit record",
	actionDelete: "Delete record",
	actionShow:   "Show records",
	actionCancel: "Cancel edit",
	actionQuit:   "Quit",
}

// Session drives an engine from a terminal menu. It is single-threaded.
type Session struct {
	engine   *engine.Engine
	driver   PromptDriver
	renderer *Renderer
	logger   *slog.Logger
	out      io.Writer
	notice   string
}

// NewSession binds an engine to a prompt driver (survey by default).
func NewSession(e *engine.Engine, options ...SessionOption) (*Session, error) {
	if e == nil {
		return nil, ErrNoEngine
	}
	s := &Session{
		engine:   e,
		renderer: New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	return s, nil
}

// Run loops over the menu until the user quits. Aborting a prompt (Ctrl+C)
// returns ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.show(ctx); err != nil {
			return err
		}

		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      menuLabels,
			DefaultIndex: int(actionFill),
		})
		if err != nil {
			return err
		}

		action := menuAction(idx)
		s.logger.Debug("menu action", "action", action.String(), "form_type", s.engine.FormType())

		switch action {
		case actionFill:
			err = s.fill(ctx)
		case actionSwitch:
			err = s.switchType(ctx)
		case actionEdit:
			err = s.edit(ctx)
		case actionDelete:
			err = s.delete(ctx)
		case actionShow:
			err = s.showRecords(ctx)
		case actionCancel:
			s.engine.CancelEdit()
		case actionQuit:
			return nil
		default:
			err = s.driver.Info(ctx, "Unknown choice")
		}
		if err != nil {
			return err
		}
	}
}

func (a menuAction) String() string {
	if a < 0 || int(a) >= len(menuLabels) {
		return "unknown"
	}
	return menuLabels[a]
}

func (s *Session) show(ctx context.Context) error {
	out, err := s.renderer.Render(ctx, s.engine.Snapshot(), render.RenderOptions{Notice: s.notice})
	if err != nil {
		return err
	}
	s.notice = ""
	return s.driver.Info(ctx, string(out))
}

// fill prompts every field then submits. On validation failure the
// messages are printed and the user may retry.
func (s *Session) fill(ctx context.Context) error {
	for {
		for _, field := range s.engine.Snapshot().Schema.Fields {
			if err := s.promptField(ctx, field); err != nil {
				return err
			}
		}

		err := s.engine.Submit()
		if err == nil {
			s.notice = render.NoticeSubmitted
			return nil
		}

		var verr *engine.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		snapshot := s.engine.Snapshot()
		for _, field := range snapshot.Schema.Fields {
			if message := verr.Fields[field.Name]; message != "" {
				if err := s.driver.Info(ctx, message); err != nil {
					return err
				}
			}
		}

		retry, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil {
			return err
		}
		if !retry {
			return nil
		}
	}
}

func (s *Session) promptField(ctx context.Context, field model.FieldDescriptor) error {
	current := s.engine.Snapshot().Value(field.Name)
	label := field.DisplayLabel()
	if field.Required {
		label += " *"
	}

	if field.Kind == model.FieldKindDropdown {
		return s.promptDropdown(ctx, field, label, current)
	}

	for {
		cfg := InputConfig{Message: label, Default: current, Help: field.Description}
		var (
			value string
			err   error
		)
		if field.Kind == model.FieldKindPassword {
			if current != "" {
				cfg.Message += " (blank keeps current)"
			}
			cfg.Default = ""
			value, err = s.driver.Password(ctx, cfg)
			if err == nil && value == "" {
				value = current
			}
		} else {
			value, err = s.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		if problem := checkShape(field.Kind, value); problem != "" {
			if err := s.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", field.DisplayLabel(), problem)); err != nil {
				return err
			}
			continue
		}
		return s.engine.UpdateField(field.Name, value)
	}
}

func (s *Session) promptDropdown(ctx context.Context, field model.FieldDescriptor, label, current string) error {
	options := append([]string(nil), field.Options...)
	if !field.Required {
		options = append([]string{noneOption}, options...)
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: indexOf(options, current),
		Help:         field.Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return s.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", field.DisplayLabel()))
	}

	value := options[idx]
	if value == noneOption && !field.Required {
		value = ""
	}
	return s.engine.UpdateField(field.Name, value)
}

func (s *Session) switchType(ctx context.Context) error {
	snapshot := s.engine.Snapshot()
	labels := make([]string, len(snapshot.FormTypes))
	current := -1
	for i, option := range snapshot.FormTypes {
		labels[i] = option.Title
		if option.Key == snapshot.FormType {
			current = i
		}
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Select Form Type:",
		Options:      labels,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(labels) {
		return s.driver.Info(ctx, "Invalid form type selection")
	}
	return s.engine.SelectFormType(snapshot.FormTypes[idx].Key)
}

func (s *Session) edit(ctx context.Context) error {
	idx, ok, err := s.pickRecord(ctx, "Edit which record?")
	if err != nil || !ok {
		return err
	}
	if err := s.engine.BeginEdit(idx); err != nil {
		return err
	}
	return s.fill(ctx)
}

func (s *Session) delete(ctx context.Context) error {
	idx, ok, err := s.pickRecord(ctx, "Delete which record?")
	if err != nil || !ok {
		return err
	}
	confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Delete record %d?", idx+1)})
	if err != nil || !confirmed {
		return err
	}
	if err := s.engine.DeleteRecord(idx); err != nil {
		return err
	}
	s.notice = render.NoticeDeleted
	return nil
}

func (s *Session) showRecords(ctx context.Context) error {
	snapshot := s.engine.Snapshot()
	if len(snapshot.Records) == 0 {
		return s.driver.Info(ctx, "No records for "+snapshot.FormType)
	}
	return s.driver.Info(ctx, strings.Join(RecordSummaries(snapshot), "\n"))
}

func (s *Session) pickRecord(ctx context.Context, message string) (int, bool, error) {
	snapshot := s.engine.Snapshot()
	if len(snapshot.Records) == 0 {
		return 0, false, s.driver.Info(ctx, "No records for "+snapshot.FormType)
	}
	summaries := RecordSummaries(snapshot)
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: summaries, DefaultIndex: -1})
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= len(summaries) {
		return 0, false, s.driver.Info(ctx, "Invalid record selection")
	}
	return idx, true, nil
}

// checkShape returns a message when a non-empty value cannot be a number or
// a date. Empty values pass; presence is checked on submit.
func checkShape(kind model.FieldKind, value string) string {
	if value == "" {
		return ""
	}
	switch kind {
	case model.FieldKindNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return "expected a number"
		}
	case model.FieldKindDate:
		if _, err := time.Parse(dateLayout, strings.TrimSpace(value)); err != nil {
			return "expected a date as YYYY-MM-DD"
		}
	}
	return ""
}
