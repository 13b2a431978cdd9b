package mmio

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type OptionsTestSuite struct {
	suite.Suite
}

func (s *OptionsTestSuite) TestDefaultOptions() {
	opts := DefaultOptions()
	s.Require().Equal(DefaultDevicePath, opts.DevicePath)
	s.Require().Empty(opts.Name)
	s.Require().Nil(opts.Meter)
	s.Require().Nil(opts.Tracer)
}

func (s *OptionsTestSuite) TestVerifyOptions() {
	opts := Options{}
	err := verifyOptions(0, &opts)
	s.Require().NotNil(err)

	opts = Options{}
	err = verifyOptions(8, &opts)
	s.Require().Nil(err)
	s.Require().Equal(DefaultDevicePath, opts.DevicePath)

	opts = Options{DevicePath: "/dev/gpiomem"}
	err = verifyOptions(8, &opts)
	s.Require().Nil(err)
	s.Require().Equal("/dev/gpiomem", opts.DevicePath)
}

func TestOptionsTestSuite(t *testing.T) {
	suite.Run(t, new(OptionsTestSuite))
}
