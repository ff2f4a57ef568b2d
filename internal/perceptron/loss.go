package perceptron

// Loss is the squared-error objective ½(y − yHat)² that Backward differentiates.
func Loss(y, yHat float64) float64 {
	d := y - yHat
	return 0.5 * d * d
}
