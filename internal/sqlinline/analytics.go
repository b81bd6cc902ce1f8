package sqlinline

const QInsertAnalytics = `--sql 6cee6202-4cc4-4b2f-8d26-05e06f49a59d
insert into analytics(id, period_from, period_to, stats, narrative, narrative_source, created_at)
values (gen_random_uuid(), $1::date, $2::date, coalesce($3::jsonb, '{}'::jsonb), $4::text, $5::text, now())
returning id::text, created_at;
`

const QGetAnalytics = `--sql 65b13bf9-279a-4011-bd67-135226c778d4
select id::text, to_char(period_from, 'YYYY-MM-DD'), to_char(period_to, 'YYYY-MM-DD'), stats, narrative, narrative_source, created_at
from analytics
where id = $1::uuid;
`
