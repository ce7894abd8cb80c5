package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"chat-hall/contract"
	"chat-hall/domain"
	"chat-hall/domain/event"
	"chat-hall/repositories"
)

// ActivityWorker periodically pushes a ChatActivityUpdate to every
// registered admin sink: which chat is active, how many of its active
// subscribers are currently connected, and the server's own CPU/RSS.
// It is observability for the admin dashboard, not domain logic.
type ActivityWorker struct {
	log         *slog.Logger
	chats       repositories.IChatRepository
	subs        repositories.ISubscriptionRepository
	registry    contract.IConnectionRegistry
	broadcaster contract.IBroadcaster
	interval    time.Duration
}

func NewActivityWorker(log *slog.Logger, chats repositories.IChatRepository,
	subs repositories.ISubscriptionRepository, registry contract.IConnectionRegistry,
	broadcaster contract.IBroadcaster, interval time.Duration) *ActivityWorker {
	return &ActivityWorker{
		log:         log,
		chats:       chats,
		subs:        subs,
		registry:    registry,
		broadcaster: broadcaster,
		interval:    interval,
	}
}

func (w *ActivityWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping activity updates")
			return nil
		case <-ticker.C:
			w.report(ctx, proc)
		}
	}
}

func (w *ActivityWorker) report(ctx context.Context, proc *process.Process) {
	update := event.ChatActivityUpdate{At: time.Now().UTC()}

	if cpu, err := proc.CPUPercent(); err == nil {
		update.CPUPercent = cpu
	}
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		update.RSSBytes = mem.RSS
	}

	active, err := w.chats.FindActive()
	if err != nil {
		w.log.Error("activity update skipped, active chat lookup failed", "error", err)
		return
	}
	if active != nil {
		update.ChatID = active.ID
		update.ChatName = active.Name
		update.IsActive = true
		update.ConnectedCount = w.connectedSubscribers(active.ID)
	}

	w.broadcaster.ToAdmins(ctx, update)
}

func (w *ActivityWorker) connectedSubscribers(chatID domain.ChatID) int {
	subs, err := w.subs.FindActiveByChat(chatID)
	if err != nil {
		w.log.Error("subscriber count failed", "chat_id", chatID, "error", err)
		return 0
	}
	count := 0
	for _, sub := range subs {
		if w.registry.IsUserConnected(sub.UserID) {
			count++
		}
	}
	return count
}
