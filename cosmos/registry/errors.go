package registry

import "errors"

var ErrNoStakingTokenFound = errors.New("no staking tokens found in registry")
var ErrNoFeeTokenFound = errors.New("no fee tokens found in registry")
var ErrNoMatchingAsset = errors.New("no matching asset found in asset list")
var ErrNoMatchingDenom = errors.New("no matching denom unit found for asset")
var ErrNoEndpointFound = errors.New("no endpoint of the requested kind found in registry")
