package mmio

import "github.com/srediag/mmio/api"

var _ api.Region = (*MMIO)(nil)
