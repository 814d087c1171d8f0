package cron

import (
	"context"
	"time"

	"mindhaven/config"
	subscriptionRepo "mindhaven/database/repository/subscription"
	"mindhaven/utils"

	"go.uber.org/zap"
)

// billingSweepInterval is how often lapsed subscriptions are swept.
const billingSweepInterval = time.Hour

// InitBillingSweep expires active subscriptions whose billing date has
// lapsed past the configured grace period. Runs hourly in the background;
// each pass is a single guarded bulk update, so overlapping instances
// cannot double-transition a subscription.
func InitBillingSweep(subs subscriptionRepo.SubscriptionRepository) {
	go func() {
		logger := utils.GetLogger()
		ticker := time.NewTicker(billingSweepInterval)
		defer ticker.Stop()

		sweep := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			grace := time.Duration(config.AppConfig.BillingGraceDays) * 24 * time.Hour
			cutoff := time.Now().Add(-grace)

			n, err := subs.ExpireLapsed(ctx, cutoff)
			if err != nil {
				logger.Error("billing sweep failed", zap.Error(err))
				return
			}
			if n > 0 {
				logger.Info("expired lapsed subscriptions", zap.Int64("count", n))
			}
		}

		sweep()
		for range ticker.C {
			sweep()
		}
	}()
}
