package sqlinline

const QGetDonor = `--sql 7b57c44b-07c1-4931-bb75-558fc16bf529
select id::text, name, email, phone, is_recurring_donor, created_at
from donors
where id = $1::uuid;
`
