package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    report_id            TEXT PRIMARY KEY,
    generated_at         TEXT NOT NULL,
    source               TEXT NOT NULL,
    scenario_count       INTEGER NOT NULL,
    recorded_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_scenarios (
    report_id               TEXT NOT NULL REFERENCES runs(report_id) ON DELETE CASCADE,
    position                INTEGER NOT NULL,
    name                    TEXT NOT NULL,
    projection_years        INTEGER NOT NULL,
    total_starting_balance  TEXT NOT NULL,
    final_balance           TEXT NOT NULL,
    cumulative_withdrawals  TEXT NOT NULL,
    cumulative_taxes        TEXT NOT NULL,
    cumulative_net_spending TEXT NOT NULL,
    cumulative_shortfall    TEXT NOT NULL,
    first_year_monthly_net  TEXT NOT NULL,
    average_withdrawal_pct  TEXT NOT NULL,
    years_funded            INTEGER NOT NULL,
    depleted                INTEGER NOT NULL DEFAULT 0,
    depletion_year          INTEGER,
    PRIMARY KEY (report_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_generated ON runs(generated_at);
`
