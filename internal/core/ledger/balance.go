package ledger

import "fmt"

// Aggregate folds all expenses and their settlement state into one Balance per
// member in memberIDs. Splits are resolved per expense via ResolveSplit, so
// the result is deterministic and independent of expense input order.
//
// Every member in memberIDs gets a Balance, all-zero when they appear in no
// expense. A payer who is also a participant accrues both paid and owed; their
// net reflects what they advanced minus their own share. An expense whose
// payer or participants fall outside memberIDs is a datastore inconsistency
// and fails the whole aggregation rather than silently dropping money.
func Aggregate(expenses []Expense, settlements SettlementSet, memberIDs []string) (map[string]Balance, error) {
	balances := make(map[string]Balance, len(memberIDs))
	for _, id := range memberIDs {
		balances[id] = Balance{}
	}

	for _, exp := range expenses {
		payer, ok := balances[exp.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: payer %s of expense %s", ErrUnknownMember, exp.PayerID, exp.ExpenseID)
		}

		split, err := ResolveSplit(exp.Amount, exp.Participants)
		if err != nil {
			return nil, fmt.Errorf("resolving split of expense %s: %w", exp.ExpenseID, err)
		}

		payer.Paid = payer.Paid.Add(exp.Amount)
		balances[exp.PayerID] = payer

		for _, participant := range exp.Participants {
			bal, ok := balances[participant]
			if !ok {
				return nil, fmt.Errorf("%w: participant %s of expense %s", ErrUnknownMember, participant, exp.ExpenseID)
			}
			share := split[participant]
			bal.Owed = bal.Owed.Add(share)

			// A share the payer owes themself is never pending; everything
			// else stays pending until the pair is settled.
			if participant != exp.PayerID && !settlements.IsPaid(exp.ExpenseID, participant) {
				bal.PendingOut = bal.PendingOut.Add(share)

				payerBal := balances[exp.PayerID]
				payerBal.PendingIn = payerBal.PendingIn.Add(share)
				balances[exp.PayerID] = payerBal
			}
			balances[participant] = bal
		}
	}

	for id, bal := range balances {
		bal.Net = bal.Paid.Sub(bal.Owed)
		balances[id] = bal
	}
	return balances, nil
}
