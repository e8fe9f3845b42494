package sollog

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "sollog")
