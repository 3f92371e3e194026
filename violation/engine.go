// Package violation escalates failed checks into cancellations, observer notifications and scheduled removals.
package violation

import (
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/check"
	"github.com/oomph-ac/ascent/metrics"
	"github.com/oomph-ac/ascent/settings"
	"github.com/sirupsen/logrus"
)

// Messenger is anything that can be sent a text message.
type Messenger interface {
	Message(msg string) error
}

// Observer is a recipient of violation notifications.
type Observer interface {
	Messenger
	Identity() actor.Identity
	// Verbose returns true if the observer wants debug information attached to notifications.
	Verbose() bool
}

// Registry provides the observers that should currently be notified of violations. Observers must
// return a slice the caller may hold on to without any lock.
type Registry interface {
	Observers() []Observer
}

// Target is the actor a violation is recorded against.
type Target struct {
	actor.Identity
	Data *Data
}

// Engine records violations against actors and decides on the consequences.
type Engine struct {
	log       *logrus.Logger
	settings  *settings.Holder
	registry  Registry
	scheduler Scheduler
	formatter Formatter
}

// NewEngine returns an Engine reading its thresholds from the settings holder passed. A nil
// scheduler never removes anyone and a nil formatter formats chat messages.
func NewEngine(log *logrus.Logger, s *settings.Holder, registry Registry, scheduler Scheduler, formatter Formatter) *Engine {
	if scheduler == nil {
		scheduler = NopScheduler{}
	}
	if formatter == nil {
		formatter = ChatFormatter{}
	}
	return &Engine{log: log, settings: s, registry: registry, scheduler: scheduler, formatter: formatter}
}

// Record records a violation of the check passed against the target and returns true if the action
// that caused it should be cancelled.
func (e *Engine) Record(target Target, d check.Descriptor, o check.Outcome) bool {
	level := target.Data.Increment(d.Kind)
	b := e.settings.Load().Basics(d.Kind)

	e.log.Warnf("%s flagged %s (%s) <x%d> %s", target.Name, o.Label, o.Reason, level, check.ExtraString(o.Extra))
	metrics.RecordFlag(d.Key, o.Reason)

	if b.NotifyEvery != 0 && level%b.NotifyEvery == 0 {
		e.notify(Notification{
			Actor:  target.Identity,
			Check:  d,
			Label:  o.Label,
			Reason: o.Reason,
			Level:  level,
			Extra:  o.Extra,
		})
	}

	if b.Bannable && level >= b.BanAt {
		target.Data.Clear(d.Kind)
		e.log.Infof("%s scheduled for removal (%s)", target.Name, d.Name)
		metrics.RecordRemoval(d.Key)
		e.scheduler.ScheduleRemoval(target.Identity, d)
	}

	cancel := b.Cancellable && level >= b.CancelAt
	if cancel {
		metrics.RecordCancel(d.Key)
	}
	return cancel
}

// notify sends n to every observer of the registry. A failed delivery is reported and does not
// stop delivery to the remaining observers.
func (e *Engine) notify(n Notification) {
	for _, obs := range e.registry.Observers() {
		if err := obs.Message(e.formatter.Format(n, obs.Verbose())); err != nil {
			metrics.RecordNotification(false)
			e.log.Errorf("failed notifying %s of violation by %s: %v", obs.Identity(), n.Actor, err)

			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("observer", obs.Identity().String())
				scope.SetTag("check", n.Check.Key)
			})
			hub.CaptureException(err)
			continue
		}
		metrics.RecordNotification(true)
	}
}
