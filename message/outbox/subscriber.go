package outbox

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
)

// SubscribeForPGMessages reads forwarder envelopes from the Postgres
// outbox table; the forwarder replays them to the broker. The table is
// initialized up front so the first fallback publish never races its
// creation.
func SubscribeForPGMessages(db *sqlx.DB, logger watermill.LoggerAdapter) message.Subscriber {
	sub, err := sql.NewSubscriber(db, sql.SubscriberConfig{
		SchemaAdapter:  sql.DefaultPostgreSQLSchema{},
		OffsetsAdapter: sql.DefaultPostgreSQLOffsetsAdapter{},
	}, logger)
	if err != nil {
		panic(err)
	}
	if err := sub.SubscribeInitialize(topic); err != nil {
		panic(err)
	}

	return sub
}
