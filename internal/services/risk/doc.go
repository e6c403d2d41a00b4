/*
Package risk implements the rule-based fraud evaluators that gate account
creation and money transfer.

Account creation is scored by a fixed, ordered list of weighted signals.
Every signal is evaluated on every application, whether or not the
threshold has already been reached, so the full breakdown is always
available to logs and callers.

Transfers are checked by strategies sharing one shape, comparing a
proposed amount to a statistic of prior amounts:

	RecencyWindowCheck  last 3 amounts, flag when amount > 3 x their average
	DeviationCheck      full history, flag when |amount - mean| > 2 x stddev
	SpikeCheck          full history, flag when amount > 3 x prior average

RecencyWindowCheck and DeviationCheck are pure. SpikeCheck is
side-effecting: Observe tentatively records the amount in an AmountHistory
and rolls it back when the amount is flagged.

All multipliers, the trusted email suffix, the balance ceiling and the score
threshold come from Config.
*/
package risk
