package observability

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/sirupsen/logrus"
)

// NewWatermill adapts a logrus entry to watermill's LoggerAdapter.
func NewWatermill(logger *logrus.Entry) watermill.LoggerAdapter {
	return watermillLogrusAdapter{logger: logger}
}

type watermillLogrusAdapter struct {
	logger *logrus.Entry
}

func (a watermillLogrusAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.WithError(err).WithFields(logrus.Fields(fields)).Error(msg)
}

func (a watermillLogrusAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

func (a watermillLogrusAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (a watermillLogrusAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.WithFields(logrus.Fields(fields)).Trace(msg)
}

func (a watermillLogrusAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return watermillLogrusAdapter{logger: a.logger.WithFields(logrus.Fields(fields))}
}
